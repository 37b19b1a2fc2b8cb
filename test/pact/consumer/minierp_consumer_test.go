//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	pacttest "github.com/HenrryVelezC/minierp/test/pact"
)

type loginPayload struct {
	Token string `json:"token"`
	User  struct {
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	} `json:"user"`
}

type customerPayload struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type orderItemPayload struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

type orderPayload struct {
	ID                   uuid.UUID          `json:"id"`
	CustomerID           uuid.UUID          `json:"customerId"`
	CustomerNameSnapshot string             `json:"customerNameSnapshot"`
	Items                []orderItemPayload `json:"items"`
	Total                string             `json:"total"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func TestWebClientContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	bearer := matchers.Regex("Bearer "+pacttest.ConsumerToken, pacttest.BearerPattern)
	customerMatcher := matchers.Map{
		"id":        matchers.Regex(pacttest.ExistingCustomerID.String(), pacttest.UUIDPattern),
		"name":      matchers.Like(pacttest.ExampleCustomerName),
		"createdAt": matchers.Like("2024-06-12T10:00:00Z"),
	}

	pact.AddInteraction().
		Given(pacttest.StateAdminExists).
		UponReceiving("a login with the default admin credentials").
		WithRequest("POST", "/api/auth/login", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]any{"email": pacttest.AdminEmail, "password": pacttest.AdminPassword})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"token": matchers.Like(pacttest.ConsumerToken),
				"user": matchers.Like(map[string]any{
					"email": pacttest.AdminEmail,
					"roles": matchers.ArrayMinLike("Admin", 1),
				}),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCustomerExists).
		UponReceiving("a request to list customers").
		WithRequest("GET", "/api/customers", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(customerMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateCustomerMissing).
		UponReceiving("a request for a missing customer").
		WithRequest("GET", "/api/customers/"+pacttest.MissingCustomerID.String(), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCustomerExists).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderPayload())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":                   matchers.Regex(uuid.NewString(), pacttest.UUIDPattern),
				"customerId":           matchers.S(pacttest.ExistingCustomerID.String()),
				"customerNameSnapshot": matchers.S(pacttest.ExampleCustomerName),
				"items": matchers.EachLike(matchers.Map{
					"productName": matchers.S(pacttest.ExampleProductName),
					"quantity":    matchers.Like(2),
					"unitPrice":   matchers.Like("9.5"),
					"lineTotal":   matchers.S("19"),
				}, 1),
				"total": matchers.S("19"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newWebClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		session, err := client.Login(ctx, pacttest.AdminEmail, pacttest.AdminPassword)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if session.Token == "" {
			return errors.New("expected a token")
		}
		if session.User.Email != pacttest.AdminEmail || len(session.User.Roles) == 0 {
			return fmt.Errorf("unexpected login user %+v", session.User)
		}
		client.token = pacttest.ConsumerToken

		customers, err := client.ListCustomers(ctx)
		if err != nil {
			return fmt.Errorf("list customers: %w", err)
		}
		if len(customers) == 0 {
			return errors.New("expected at least one customer")
		}

		if err := client.GetCustomer(ctx, pacttest.MissingCustomerID); err == nil {
			return fmt.Errorf("expected 404 for customer %s", pacttest.MissingCustomerID)
		} else if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %v", err)
		}

		order, err := client.PlaceOrder(ctx, pacttest.ExampleOrderPayload())
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if order.Total != "19" || len(order.Items) != 1 {
			return fmt.Errorf("unexpected order %+v", order)
		}
		return nil
	})
	require.NoError(t, err)
}

type webClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newWebClient(config pactconsumer.MockServerConfig) *webClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &webClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *webClient) Login(ctx context.Context, email, password string) (*loginPayload, error) {
	var out loginPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *webClient) ListCustomers(ctx context.Context) ([]customerPayload, error) {
	var out []customerPayload
	err := c.do(ctx, http.MethodGet, "/api/customers", nil, &out)
	return out, err
}

func (c *webClient) GetCustomer(ctx context.Context, id uuid.UUID) error {
	var out customerPayload
	return c.do(ctx, http.MethodGet, "/api/customers/"+id.String(), nil, &out)
}

func (c *webClient) PlaceOrder(ctx context.Context, body map[string]any) (*orderPayload, error) {
	var out orderPayload
	if err := c.do(ctx, http.MethodPost, "/api/orders", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *webClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
