// Slack payload types shared between the confirmation path and the Slack client.

package model

// SlackField - one attachment field (title/value pair)
// The confirmation path reads order overrides back out of these by title.
type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Field titles the confirmation path recognizes.
const (
	FieldPizzaType       = "Pizza Type"
	FieldSize            = "Size"
	FieldDeliveryAddress = "Delivery Address"
)

// SlackThread - where follow-up messages for one conversation go.
// TS is empty until the first message of the thread is known.
type SlackThread struct {
	Channel     string `json:"channel,omitempty"`
	TS          string `json:"ts,omitempty"`
	ResponseURL string `json:"responseUrl,omitempty"`
}

// SlackInteraction - the parts of a Slack interactive callback we use.
type SlackInteraction struct {
	Type       string `json:"type"`
	CallbackID string `json:"callback_id"`
	Actions    []struct {
		Name     string `json:"name"`
		ActionID string `json:"action_id"`
		Value    string `json:"value"`
	} `json:"actions"`
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
	User struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	MessageTS       string `json:"message_ts"`
	ResponseURL     string `json:"response_url"`
	OriginalMessage *struct {
		TS          string `json:"ts"`
		Attachments []struct {
			Fields []SlackField `json:"fields"`
		} `json:"attachments"`
	} `json:"original_message"`
	Message *struct {
		TS          string `json:"ts"`
		Attachments []struct {
			Fields []SlackField `json:"fields"`
		} `json:"attachments"`
	} `json:"message"`
	Container struct {
		MessageTS string `json:"message_ts"`
	} `json:"container"`
}

// ActionName returns the first action identifier ("order", "confirm", "cancel").
func (i SlackInteraction) ActionName() string {
	if len(i.Actions) == 0 {
		return ""
	}
	a := i.Actions[0]
	switch {
	case a.Name != "":
		return a.Name
	case a.ActionID != "":
		return a.ActionID
	default:
		return a.Value
	}
}

// Fields returns the attachment fields of the message the buttons were on.
func (i SlackInteraction) Fields() []SlackField {
	if i.OriginalMessage != nil && len(i.OriginalMessage.Attachments) > 0 {
		return i.OriginalMessage.Attachments[0].Fields
	}
	if i.Message != nil && len(i.Message.Attachments) > 0 {
		return i.Message.Attachments[0].Fields
	}
	return nil
}

// Thread returns the thread replies for this interaction should go to.
func (i SlackInteraction) Thread() SlackThread {
	ts := i.MessageTS
	if ts == "" {
		ts = i.Container.MessageTS
	}
	if ts == "" && i.OriginalMessage != nil {
		ts = i.OriginalMessage.TS
	}
	if ts == "" && i.Message != nil {
		ts = i.Message.TS
	}
	return SlackThread{
		Channel:     i.Channel.ID,
		TS:          ts,
		ResponseURL: i.ResponseURL,
	}
}
