// Order status polling.
//
// A poll session follows one PizzaOrder after it was created from Slack:
//   - every POLL_INTERVAL the status is read and a message is posted into the thread
//   - unplaced: waiting message
//   - placed: current milestone (outForDelivery > qualityCheck > bake > prep > placed)
//   - delivered: final message, the session ends and the resource is not read again
//
// There is at most one session per resource name. Starting a session for a
// name that already has one replaces it. Sessions have no time limit.

package service

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	pizzav1 "github.com/kube-rca/pizza-observability/api/v1"
	"github.com/kube-rca/pizza-observability/internal/client"
	"github.com/kube-rca/pizza-observability/internal/metrics"
	"github.com/kube-rca/pizza-observability/internal/model"
)

// Phase - coarse order state derived from a PizzaOrder status
type Phase string

const (
	PhaseUnplaced  Phase = "unplaced"
	PhasePlaced    Phase = "placed"
	PhaseDelivered Phase = "delivered"
)

// PhaseOf classifies status. Nothing prevents a later status from looking
// earlier than a previous one; the latest read always wins.
func PhaseOf(status pizzav1.PizzaOrderStatus) Phase {
	switch {
	case status.Delivered:
		return PhaseDelivered
	case status.Placed && status.OrderID != "":
		return PhasePlaced
	default:
		return PhaseUnplaced
	}
}

// Milestone - label and emoji of a placed order's current stage
type Milestone struct {
	Label string
	Emoji string
}

// CurrentMilestone returns the highest stage present in tracker.
func CurrentMilestone(tracker *pizzav1.Tracker) Milestone {
	switch {
	case tracker == nil:
		return Milestone{Label: "Order placed", Emoji: ":pizza:"}
	case tracker.OutForDelivery != "":
		return Milestone{Label: "Out for delivery", Emoji: ":truck:"}
	case tracker.QualityCheck != "":
		return Milestone{Label: "Quality check", Emoji: ":white_check_mark:"}
	case tracker.Bake != "":
		return Milestone{Label: "Baking", Emoji: ":fire:"}
	case tracker.Prep != "":
		return Milestone{Label: "Preparation", Emoji: ":cook:"}
	default:
		return Milestone{Label: "Order placed", Emoji: ":pizza:"}
	}
}

// StageLabel is the single label reported by the status endpoint.
func StageLabel(status pizzav1.PizzaOrderStatus) string {
	switch PhaseOf(status) {
	case PhaseDelivered:
		return "Delivered"
	case PhasePlaced:
		return CurrentMilestone(status.Tracker).Label
	default:
		return "Waiting"
	}
}

// FormatTimestamp renders an RFC3339 tracker time as a wall-clock time.
// Empty means "N/A"; unparseable values are shown as-is.
func FormatTimestamp(ts string) string {
	if ts == "" {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("3:04:05 PM")
}

func trackerFields(tracker *pizzav1.Tracker) []string {
	if tracker == nil {
		return nil
	}
	var fields []string
	if tracker.Prep != "" {
		fields = append(fields, "*Prep:* "+FormatTimestamp(tracker.Prep))
	}
	if tracker.Bake != "" {
		fields = append(fields, "*Bake:* "+FormatTimestamp(tracker.Bake))
	}
	if tracker.QualityCheck != "" {
		fields = append(fields, "*Quality Check:* "+FormatTimestamp(tracker.QualityCheck))
	}
	if tracker.OutForDelivery != "" {
		fields = append(fields, "*Out For Delivery:* "+FormatTimestamp(tracker.OutForDelivery))
	}
	return fields
}

type statusReader interface {
	GetOrderStatus(ctx context.Context, name, namespace string) (pizzav1.PizzaOrderStatus, error)
}

type threadReplier interface {
	Reply(ctx context.Context, thread model.SlackThread, msg client.SlackMessage) (string, error)
}

type pollSession struct {
	name      string
	namespace string
	thread    model.SlackThread
	entryID   cron.EntryID
}

// SessionManager owns every active poll session.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*pollSession

	cron     *cron.Cron
	interval time.Duration
	reader   statusReader
	slack    threadReplier
	logger   *zap.Logger
}

func NewSessionManager(reader statusReader, slack threadReplier, interval time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*pollSession),
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		interval: interval,
		reader:   reader,
		slack:    slack,
		logger:   logger,
	}
}

// Run starts the scheduler.
func (m *SessionManager) Run() {
	m.cron.Start()
}

// Stop stops the scheduler. The returned context is done once running
// polls have finished.
func (m *SessionManager) Stop() context.Context {
	return m.cron.Stop()
}

// Start begins polling name/namespace, posting into thread. An existing
// session for name is cancelled first.
func (m *SessionManager) Start(name, namespace string, thread model.SlackThread) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.sessions[name]; ok {
		m.cron.Remove(old.entryID)
		delete(m.sessions, name)
		metrics.ActivePollSessions.Dec()
	}

	sess := &pollSession{name: name, namespace: namespace, thread: thread}
	sess.entryID = m.cron.Schedule(cron.Every(m.interval), cron.FuncJob(func() {
		m.poll(context.Background(), sess)
	}))
	m.sessions[name] = sess
	metrics.ActivePollSessions.Inc()

	m.logger.Info("poll session started",
		zap.String("resource", name),
		zap.String("namespace", namespace),
		zap.Duration("interval", m.interval),
	)
}

// Cancel ends the session for name, if any.
func (m *SessionManager) Cancel(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[name]; ok {
		m.remove(sess)
	}
}

// Active returns the number of running sessions.
func (m *SessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Has reports whether name has a running session.
func (m *SessionManager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[name]
	return ok
}

// end removes sess unless it was already replaced by a newer session.
func (m *SessionManager) end(sess *pollSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[sess.name]; ok && cur == sess {
		m.remove(sess)
	}
}

// remove requires m.mu.
func (m *SessionManager) remove(sess *pollSession) {
	m.cron.Remove(sess.entryID)
	delete(m.sessions, sess.name)
	metrics.ActivePollSessions.Dec()
}

func (m *SessionManager) poll(ctx context.Context, sess *pollSession) {
	status, err := m.reader.GetOrderStatus(ctx, sess.name, sess.namespace)
	if err != nil {
		metrics.RecordPoll("error")
		m.logger.Warn("failed to poll order status",
			zap.String("resource", sess.name),
			zap.String("namespace", sess.namespace),
			zap.Error(err),
		)
		return
	}

	phase := PhaseOf(status)
	metrics.RecordPoll(string(phase))

	var msg client.SlackMessage
	switch phase {
	case PhaseDelivered:
		m.end(sess)
		delivered := ""
		if status.Tracker != nil {
			delivered = status.Tracker.Delivered
		}
		msg = client.DeliveredMessage(status.OrderID, status.Price, FormatTimestamp(delivered))
		m.logger.Info("order delivered, poll session ended", zap.String("resource", sess.name))
	case PhasePlaced:
		ms := CurrentMilestone(status.Tracker)
		msg = client.StatusUpdateMessage(ms.Emoji, ms.Label, status.OrderID, status.Price, trackerFields(status.Tracker))
	default:
		msg = client.WaitingMessage()
	}

	if _, err := m.slack.Reply(ctx, sess.thread, msg); err != nil {
		m.logger.Warn("failed to post order status",
			zap.String("resource", sess.name),
			zap.String("phase", string(phase)),
			zap.Error(err),
		)
	}
}
