package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kube-rca/pizza-observability/internal/model"
	"github.com/kube-rca/pizza-observability/internal/service"
)

func interactionPayload(action string) string {
	return `{
		"type": "interactive_message",
		"callback_id": "pizza_order",
		"actions": [{"name": "` + action + `", "value": "` + action + `"}],
		"channel": {"id": "C123"},
		"user": {"id": "U1", "name": "oncall"},
		"message_ts": "1700000000.000100",
		"original_message": {
			"ts": "1700000000.000100",
			"attachments": [{"fields": [
				{"title": "HighCPUUsage", "value": "CPU above 90%"},
				{"title": "Pizza Type", "value": "cheese", "short": true},
				{"title": "Size", "value": "small", "short": true}
			]}]
		}
	}`
}

func postForm(env *testEnv, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

var _ = Describe("POST /slack/actions", func() {
	var env *testEnv

	BeforeEach(func() {
		env = newTestEnv(envOptions{backend: service.BackendKubernetes})
	})

	It("acknowledges an order click and creates the PizzaOrder in the background", func() {
		w := postForm(env, "/slack/actions", url.Values{"payload": {interactionPayload("order")}})
		Expect(w.Code).To(Equal(http.StatusOK))

		Eventually(func() int { return len(pizzaOrders(env)) }).Should(Equal(1))
		order := pizzaOrders(env)[0]
		Expect(order.Spec.Pizzas[0].Toppings).To(Equal([]string{"cheese"}))
		Expect(order.Spec.Pizzas[0].Size).To(Equal("small"))

		By("following the order in the Slack thread")
		Eventually(func() bool { return env.sessions.Has(order.Name) }).Should(BeTrue())
		Eventually(env.slack.calls).Should(BeNumerically(">=", 2))
	})

	It("creates nothing on cancel", func() {
		w := postForm(env, "/slack/actions", url.Values{"payload": {interactionPayload("cancel")}})
		Expect(w.Code).To(Equal(http.StatusOK))

		Eventually(env.slack.calls).Should(Equal(1))
		Consistently(func() int { return len(pizzaOrders(env)) }).Should(BeZero())
	})

	It("requires a payload", func() {
		w := postForm(env, "/slack/actions", url.Values{})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a payload that is not JSON", func() {
		w := postForm(env, "/slack/actions", url.Values{"payload": {"{not json"}})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})

type fakeHistoryRepo struct {
	records []model.DispatchRecord
	limit   int
}

func (f *fakeHistoryRepo) ListDispatches(_ context.Context, limit int) ([]model.DispatchRecord, error) {
	f.limit = limit
	return f.records, nil
}

var _ = Describe("GET /api/v1/dispatches", func() {
	It("is not found when history is disabled", func() {
		env := newTestEnv(envOptions{})
		w, resp := do(env, http.MethodGet, "/api/v1/dispatches", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(resp["message"]).To(Equal("dispatch history is disabled"))
	})

	It("lists recorded dispatches", func() {
		repo := &fakeHistoryRepo{records: []model.DispatchRecord{{
			ID:        "1",
			AlertName: "HighCPUUsage",
			Backend:   service.BackendMock,
			Outcome:   model.OutcomeSucceeded,
			OrderID:   "TEST-1",
		}}}
		env := newTestEnv(envOptions{history: service.NewHistoryService(repo)})

		w, resp := do(env, http.MethodGet, "/api/v1/dispatches?limit=10", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp["status"]).To(Equal("success"))
		Expect(resp["data"]).To(HaveLen(1))
		Expect(repo.limit).To(Equal(10))
	})
})

var _ = Describe("service endpoints", func() {
	It("answers ping", func() {
		env := newTestEnv(envOptions{})
		w, resp := do(env, http.MethodGet, "/ping", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp["message"]).To(Equal("pong"))
	})

	It("serves the OpenAPI document", func() {
		env := newTestEnv(envOptions{})
		w, resp := do(env, http.MethodGet, "/openapi.json", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp).To(HaveKey("paths"))
	})

	It("exposes prometheus metrics", func() {
		env := newTestEnv(envOptions{})
		w, _ := do(env, http.MethodGet, "/metrics", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("go_goroutines"))
	})
})
