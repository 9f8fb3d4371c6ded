package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	pizzav1 "github.com/kube-rca/pizza-observability/api/v1"
	"github.com/kube-rca/pizza-observability/internal/client"
	"github.com/kube-rca/pizza-observability/internal/service"
)

// priceFailingAPI prices nothing and counts PlaceOrder calls.
type priceFailingAPI struct {
	*client.MockPizzaClient
	places int
}

func (p *priceFailingAPI) PriceOrder(ctx context.Context, order *client.Order) (float64, error) {
	return 0, errors.New("PricingFailure: store closed")
}

func (p *priceFailingAPI) PlaceOrder(ctx context.Context, order *client.Order) (*client.PlaceResult, error) {
	p.places++
	return p.MockPizzaClient.PlaceOrder(ctx, order)
}

const cpuAlert = `{
	"status": "firing",
	"receiver": "pizza",
	"alerts": [{
		"status": "firing",
		"labels": {"alertname": "HighCPUUsage", "severity": "critical"},
		"annotations": {"description": "CPU usage above 90% for 5 minutes"}
	}]
}`

func do(env *testEnv, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	GinkgoHelper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var resp map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.Body.Len() > 0 {
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	}
	return w, resp
}

func pizzaOrders(env *testEnv) []pizzav1.PizzaOrder {
	GinkgoHelper()
	list := &pizzav1.PizzaOrderList{}
	Expect(env.kube.List(context.Background(), list)).To(Succeed())
	return list.Items
}

var _ = Describe("POST /", func() {
	Context("with the mock backend and no notification channel", func() {
		It("places the order and returns its details", func() {
			env := newTestEnv(envOptions{backend: service.BackendMock})

			w, resp := do(env, http.MethodPost, "/", cpuAlert)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["message"]).To(Equal("Pizza ordered successfully"))

			details := resp["orderDetails"].(map[string]any)
			Expect(details["orderId"]).To(HavePrefix("TEST-"))
			Expect(details["price"]).To(BeNumerically("==", 19.99))
			Expect(details["estimatedDeliveryTime"]).To(Equal("30-45 minutes"))

			Expect(env.pizza.Placed()).To(HaveLen(1))
			Expect(env.slack.calls()).To(BeZero())
		})
	})

	Context("with a notification channel configured", func() {
		It("asks in Slack and places nothing", func() {
			env := newTestEnv(envOptions{backend: service.BackendMock, slackWebhookURL: true})

			w, resp := do(env, http.MethodPost, "/", cpuAlert)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["message"]).To(Equal("Alert received, Slack notification sent for confirmation"))

			Expect(env.slack.calls()).To(Equal(1))
			Expect(env.slack.path(0)).To(Equal("/services/T000/B000/XXX"))
			Expect(env.slack.texts()).To(ConsistOf("🍕 High CPU Alert - Pizza Time? 🍕"))
			Expect(env.pizza.Placed()).To(BeEmpty())
			Expect(pizzaOrders(env)).To(BeEmpty())
		})
	})

	Context("with the kubernetes backend", func() {
		It("creates a PizzaOrder", func() {
			env := newTestEnv(envOptions{backend: service.BackendKubernetes})

			w, resp := do(env, http.MethodPost, "/", cpuAlert)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["message"]).To(Equal("PizzaOrder resource created successfully"))
			Expect(resp["resourceName"]).To(HavePrefix("cpu-alert-"))
			Expect(resp["namespace"]).To(Equal("default"))

			orders := pizzaOrders(env)
			Expect(orders).To(HaveLen(1))
			Expect(orders[0].Labels).To(HaveKeyWithValue("alert-name", "HighCPUUsage"))
		})
	})

	Context("with invalid input", func() {
		var env *testEnv

		BeforeEach(func() {
			env = newTestEnv(envOptions{backend: service.BackendMock})
		})

		It("rejects an empty body", func() {
			w, resp := do(env, http.MethodPost, "/", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["message"]).To(Equal("Request body is required"))
		})

		It("rejects a body without alerts and dispatches nothing", func() {
			w, resp := do(env, http.MethodPost, "/", `{"status":"firing"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["message"]).To(Equal("Invalid alert data structure"))
			Expect(resp["expectedFormat"]).To(Equal("{ alerts: [{ status, labels, annotations }] }"))
			Expect(env.pizza.Placed()).To(BeEmpty())
			Expect(env.slack.calls()).To(BeZero())
		})

		It("rejects alerts that are not an array", func() {
			w, resp := do(env, http.MethodPost, "/", `{"alerts":"HighCPUUsage"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["message"]).To(Equal("Invalid alert data structure"))
		})
	})

	Context("with alerts from a sender other than Alertmanager", func() {
		DescribeTable("still classifies and dispatches",
			func(alert string) {
				env := newTestEnv(envOptions{backend: service.BackendMock})

				w, resp := do(env, http.MethodPost, "/", `{"alerts":[`+alert+`]}`)
				Expect(w.Code).To(Equal(http.StatusOK))
				Expect(resp["message"]).To(Equal("Pizza ordered successfully"))
				Expect(env.pizza.Placed()).To(HaveLen(1))
			},
			Entry("numeric annotation value",
				`{"status":"firing","labels":{"alertname":"HighCPUUsage"},"annotations":{"value":95.3}}`),
			Entry("empty startsAt",
				`{"status":"firing","labels":{"alertname":"HighCPUUsage"},"startsAt":""}`),
			Entry("startsAt that is not RFC3339",
				`{"status":"firing","labels":{"alertname":"HighCPUUsage"},"startsAt":"2026-01-02 03:04","endsAt":"0"}`),
			Entry("labels and annotations with mixed types",
				`{"status":"firing","labels":{"alertname":"HighCPUUsage","replica":2},"annotations":{"paged":true,"runbook":null}}`),
		)
	})

	It("takes no action for other alerts", func() {
		env := newTestEnv(envOptions{backend: service.BackendMock})
		body := strings.Replace(cpuAlert, "HighCPUUsage", "DiskFull", 1)

		w, resp := do(env, http.MethodPost, "/", body)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp["message"]).To(Equal("Alert received but no action taken"))
		Expect(env.pizza.Placed()).To(BeEmpty())
	})

	It("reports the failing stage when Slack rejects the notification", func() {
		env := newTestEnv(envOptions{backend: service.BackendMock, slackWebhookURL: true, slackStatus: http.StatusForbidden})

		w, resp := do(env, http.MethodPost, "/", cpuAlert)
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(resp["message"]).To(Equal("Error sending Slack notification"))
		Expect(resp["cause"]).To(Equal(service.StageNotification))
		Expect(resp["error"]).To(ContainSubstring("403"))
		Expect(env.pizza.Placed()).To(BeEmpty())
	})

	It("reports the failing stage of a direct order", func() {
		api := &priceFailingAPI{MockPizzaClient: client.NewMockPizzaClient("1234")}
		env := newTestEnv(envOptions{backend: service.BackendDirect, pizzaAPI: api})

		w, resp := do(env, http.MethodPost, "/", cpuAlert)
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(resp["message"]).To(Equal("Error ordering pizza"))
		Expect(resp["error"]).To(Equal("PricingFailure: store closed"))
		Expect(resp["cause"]).To(Equal(service.StagePrice))
		Expect(api.places).To(BeZero())
	})

	Context("with a Slack bridge confirmation", func() {
		It("creates a PizzaOrder from the alert fields", func() {
			env := newTestEnv(envOptions{backend: service.BackendMock})

			w, resp := do(env, http.MethodPost, "/", `{
				"confirmationSource": "slack",
				"orderConfirmed": true,
				"alertDetails": [
					{"title": "HighCPUUsage", "value": "CPU above 90%"},
					{"title": "Pizza Type", "value": "veggie"},
					{"title": "Size", "value": "medium"}
				]
			}`)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["message"]).To(Equal("PizzaOrder resource created successfully from Slack confirmation"))

			orders := pizzaOrders(env)
			Expect(orders).To(HaveLen(1))
			Expect(orders[0].Spec.Pizzas[0].Toppings).To(Equal([]string{"veggie"}))
			Expect(orders[0].Spec.Pizzas[0].Size).To(Equal("medium"))
			Expect(env.pizza.Placed()).To(BeEmpty())
		})
	})
})

var _ = Describe("GET /", func() {
	It("reports the current stage of a PizzaOrder", func() {
		order := &pizzav1.PizzaOrder{
			ObjectMeta: metav1.ObjectMeta{Name: "cpu-alert-1", Namespace: "default"},
			Status: pizzav1.PizzaOrderStatus{
				Placed:  true,
				OrderID: "X",
				Tracker: &pizzav1.Tracker{Bake: "t1"},
			},
		}
		env := newTestEnv(envOptions{}, order)

		w, resp := do(env, http.MethodGet, "/?resource=cpu-alert-1&namespace=default", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp["name"]).To(Equal("cpu-alert-1"))
		Expect(resp["stage"]).To(Equal("Baking"))
		Expect(resp["orderId"]).To(Equal("X"))
		Expect(resp["price"]).To(Equal("Unknown"))
		Expect(resp["placed"]).To(BeTrue())
	})

	It("defaults the namespace", func() {
		order := &pizzav1.PizzaOrder{ObjectMeta: metav1.ObjectMeta{Name: "cpu-alert-2", Namespace: "default"}}
		env := newTestEnv(envOptions{}, order)

		w, resp := do(env, http.MethodGet, "/?resource=cpu-alert-2", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp["stage"]).To(Equal("Waiting"))
	})

	It("requires a resource name", func() {
		env := newTestEnv(envOptions{})
		w, _ := do(env, http.MethodGet, "/", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for a missing PizzaOrder", func() {
		env := newTestEnv(envOptions{})
		w, resp := do(env, http.MethodGet, "/?"+url.Values{"resource": {"nope"}}.Encode(), "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(resp["message"]).To(ContainSubstring("nope"))
	})
})
