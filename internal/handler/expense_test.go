package handler_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/mvess/spendlog/internal/handler"
	"github.com/mvess/spendlog/internal/service"
	"github.com/shopspring/decimal"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

func newTestMux(t *testing.T) (*http.ServeMux, *service.AuthService, *service.ExpenseService) {
	t.Helper()
	auth, expenses := newTestServices(t)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, expenses)
	return mux, auth, expenses
}

// seedExpense inserts an expense directly through the service for the user
// behind the given token.
func seedExpense(t *testing.T, auth *service.AuthService, expenses *service.ExpenseService, token string) int64 {
	t.Helper()
	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	amount := decimal.RequireFromString("3.5")
	created, err := expenses.Create(context.Background(), userID, service.ExpenseInput{
		Title:  "coffee",
		Amount: &amount,
		Date:   "2024-01-01",
	})
	if err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	return created.ID
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestSignup_Created(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.New().
		Handler(mux).
		Post("/signup").
		JSON(`{"username":"alice","password":"p1"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Present("$.message")).
		End()
}

func TestSignup_MissingFields(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.New().
		Handler(mux).
		Post("/signup").
		JSON(`{"username":"alice"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Present("$.error")).
		End()
}

func TestSignup_DuplicateUsername(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.New().
		Handler(mux).
		Post("/signup").
		JSON(`{"username":"alice","password":"p1"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	// Same username, different password: still a conflict.
	apitest.New().
		Handler(mux).
		Post("/signup").
		JSON(`{"username":"alice","password":"p2"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.error", "Username already taken.")).
		End()
}

func TestLogin_IssuesToken(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.New().
		Handler(mux).
		Post("/signup").
		JSON(`{"username":"alice","password":"p1"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.New().
		Handler(mux).
		Post("/login").
		JSON(`{"username":"alice","password":"p1"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.auth", true)).
		Assert(jsonpath.Present("$.token")).
		End()
}

func TestLogin_UniformCredentialFailure(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.New().
		Handler(mux).
		Post("/signup").
		JSON(`{"username":"alice","password":"p1"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	// Wrong password and unknown username must be indistinguishable.
	apitest.New().
		Handler(mux).
		Post("/login").
		JSON(`{"username":"alice","password":"wrong"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "Invalid username or password.")).
		End()

	apitest.New().
		Handler(mux).
		Post("/login").
		JSON(`{"username":"nobody","password":"p1"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "Invalid username or password.")).
		End()
}

func TestExpenses_RequireToken(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.New().
		Handler(mux).
		Post("/expenses").
		JSON(`{"title":"coffee","amount":3.5,"date":"2024-01-01"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().
		Handler(mux).
		Get("/expenses").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().
		Handler(mux).
		Put("/expenses/1").
		JSON(`{"title":"coffee","amount":3.5,"date":"2024-01-01"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().
		Handler(mux).
		Delete("/expenses/1").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestExpenses_CreateAndList(t *testing.T) {
	mux, auth, _ := newTestMux(t)
	token := signupAndLogin(t, auth, "alice")

	apitest.New().
		Handler(mux).
		Post("/expenses").
		Header("Authorization", "Bearer "+token).
		JSON(`{"title":"coffee","amount":3.5,"date":"2024-01-01"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.expense.title", "coffee")).
		Assert(jsonpath.Equal("$.expense.amount", "3.5")).
		Assert(jsonpath.Equal("$.expense.date", "2024-01-01")).
		Assert(jsonpath.Present("$.expense.id")).
		End()

	apitest.New().
		Handler(mux).
		Get("/expenses").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.expenses", 1)).
		Assert(jsonpath.Equal("$.expenses[0].title", "coffee")).
		End()
}

func TestExpenses_Create_MissingFields(t *testing.T) {
	mux, auth, _ := newTestMux(t)
	token := signupAndLogin(t, auth, "alice")

	for _, body := range []string{
		`{"amount":3.5,"date":"2024-01-01"}`,
		`{"title":"coffee","date":"2024-01-01"}`,
		`{"title":"coffee","amount":3.5}`,
	} {
		apitest.New().
			Handler(mux).
			Post("/expenses").
			Header("Authorization", "Bearer "+token).
			JSON(body).
			Expect(t).
			Status(http.StatusBadRequest).
			Assert(jsonpath.Present("$.error")).
			End()
	}

	// Nothing was persisted.
	apitest.New().
		Handler(mux).
		Get("/expenses").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.expenses", 0)).
		End()
}

func TestExpenses_CreateIgnoresClientSuppliedOwner(t *testing.T) {
	mux, auth, expenses := newTestMux(t)
	aliceToken := signupAndLogin(t, auth, "alice")
	bobToken := signupAndLogin(t, auth, "bob")

	aliceID, err := auth.ValidateToken(aliceToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	// Bob tries to plant an expense on alice's account by naming her id in
	// the body; the owner must still come from his token.
	apitest.New().
		Handler(mux).
		Post("/expenses").
		Header("Authorization", "Bearer "+bobToken).
		JSON(`{"title":"planted","amount":1,"date":"2024-01-01","userId":`+formatID(aliceID)+`,"ownerId":`+formatID(aliceID)+`}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	aliceExpenses, err := expenses.List(context.Background(), aliceID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(aliceExpenses) != 0 {
		t.Fatalf("expected no expenses on alice's account, got %d", len(aliceExpenses))
	}
}

func TestExpenses_ListIsOwnerScoped(t *testing.T) {
	mux, auth, _ := newTestMux(t)
	aliceToken := signupAndLogin(t, auth, "alice")
	bobToken := signupAndLogin(t, auth, "bob")

	apitest.New().
		Handler(mux).
		Post("/expenses").
		Header("Authorization", "Bearer "+aliceToken).
		JSON(`{"title":"coffee","amount":3.5,"date":"2024-01-01"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	// Bob never sees alice's rows.
	apitest.New().
		Handler(mux).
		Get("/expenses").
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.expenses", 0)).
		End()
}

func TestExpenses_Update(t *testing.T) {
	mux, auth, expenses := newTestMux(t)
	token := signupAndLogin(t, auth, "alice")
	id := seedExpense(t, auth, expenses, token)

	apitest.New().
		Handler(mux).
		Put("/expenses/"+formatID(id)).
		Header("Authorization", "Bearer "+token).
		JSON(`{"title":"espresso","amount":"4.25","date":"2024-01-02"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.expense.title", "espresso")).
		Assert(jsonpath.Equal("$.expense.amount", "4.25")).
		End()
}

func TestExpenses_UpdateOtherUsers_NotFound(t *testing.T) {
	mux, auth, expenses := newTestMux(t)
	aliceToken := signupAndLogin(t, auth, "alice")
	bobToken := signupAndLogin(t, auth, "bob")
	id := seedExpense(t, auth, expenses, aliceToken)

	apitest.New().
		Handler(mux).
		Put("/expenses/"+formatID(id)).
		Header("Authorization", "Bearer "+bobToken).
		JSON(`{"title":"stolen","amount":"1","date":"2024-01-02"}`).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.error", "Expense not found.")).
		End()
}

func TestExpenses_DeleteTwice(t *testing.T) {
	mux, auth, expenses := newTestMux(t)
	token := signupAndLogin(t, auth, "alice")
	id := seedExpense(t, auth, expenses, token)

	apitest.New().
		Handler(mux).
		Delete("/expenses/"+formatID(id)).
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		End()

	// Second delete of the same id reports not found.
	apitest.New().
		Handler(mux).
		Delete("/expenses/"+formatID(id)).
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestExpenses_BadID(t *testing.T) {
	mux, auth, _ := newTestMux(t)
	token := signupAndLogin(t, auth, "alice")

	apitest.New().
		Handler(mux).
		Delete("/expenses/abc").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestHome_Welcome(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.New().
		Handler(mux).
		Get("/").
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestHealthz(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.New().
		Handler(mux).
		Get("/healthz").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.status", "ok")).
		End()
}
