//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
)

const (
	ProviderName = "minierp-api"
	ConsumerName = "minierp-web"

	StateAdminExists     = "the default admin account exists"
	StateCustomersBase   = "customers baseline"
	StateCustomerExists  = "customer Acme exists"
	StateCustomerMissing = "no customer with the missing id"
)

const (
	AdminEmail    = "admin@minierp.local"
	AdminPassword = "Admin123$"

	// ConsumerToken is what the web client sends; the provider swaps it for a token it signed itself.
	ConsumerToken = "eyJhbGciOiJIUzI1NiJ9.consumer.token"
	BearerPattern = `^Bearer [A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]*$`
	UUIDPattern   = `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`

	ExampleCustomerName = "Acme"
	ExampleProductName  = "Widget"
)

var (
	ExistingCustomerID = uuid.MustParse("5b0f8c1e-7a35-4d6b-9a55-0c1f3e2d4b10")
	MissingCustomerID  = uuid.MustParse("00000000-0000-4000-8000-000000000404")
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCustomerPayload provides stable test data for customer interactions.
func ExampleCustomerPayload() map[string]any {
	return map[string]any{
		"name":    ExampleCustomerName,
		"email":   "sales@acme.com",
		"phone":   "555-0100",
		"address": "1 Main St",
	}
}

// ExampleOrderPayload is two widgets at 9.50, a total of 19.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"customerId": ExistingCustomerID.String(),
		"items": []map[string]any{
			{"productName": ExampleProductName, "quantity": 2, "unitPrice": "9.5"},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
