package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/server/http/dto"
	"github.com/ebiblio/storefront/internal/server/http/middleware"
	testhelpers "github.com/ebiblio/storefront/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, pattern, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
		c.Set(middleware.UserRoleContextKey, string(model.RoleCustomer))
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Email: "user@example.com", Name: "User", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "ebiblio_token" {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named ebiblio_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed payload",
			facade: testhelpers.AuthFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "blank credentials",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrInvalidCredentials
			}},
			body:   []byte(`{"email":"","password":""}`),
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrAlreadyExists
			}},
			body:   []byte(`{"email":"user@example.com","password":"pass"}`),
			status: http.StatusConflict,
		},
		{
			name: "storage failure",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", errors.New("boom")
			}},
			body:   []byte(`{"email":"user@example.com","password":"pass"}`),
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tc.facade).Register, nil, tc.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.com", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	failing := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	resp = performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(failing).Login, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestLibraryHandlerListSetsNoStore(t *testing.T) {
	end := time.Date(2035, time.January, 1, 0, 0, 0, 0, time.UTC)
	facade := testhelpers.LibraryFacadeStub{ShelfFn: func(ctx context.Context, userID int64, now time.Time) ([]model.LibraryItem, error) {
		if userID != 7 {
			t.Fatalf("unexpected user id %d", userID)
		}
		return []model.LibraryItem{
			{ID: "3-9", OrderNumber: "AB12CD34", BookID: 9, Title: "Germinal", Kind: model.LineKindRental, Window: model.AccessWindow{End: end}, DaysLeft: 12, StatusLabel: "Accès autorisé · 12 j restants", PDFURL: "https://cdn/9.pdf"},
			{ID: "3-4", BookID: 4, Kind: model.LineKindPurchase, StatusLabel: model.LabelPermanent},
		}, nil
	}}

	resp := performRequest(t, http.MethodGet, "/library", "/library", NewLibraryHandler(facade).List, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected no-store cache header, got %q", got)
	}

	var items []dto.LibraryItemResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].StatusLabel != "Accès autorisé · 12 j restants" {
		t.Fatalf("unexpected label %q", items[0].StatusLabel)
	}
	if !items[0].HasContent || items[1].HasContent {
		t.Fatalf("hasContent should reflect locator presence only")
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("cdn/9.pdf")) {
		t.Fatal("listing must not leak content locators")
	}
}

func TestLibraryHandlerOpen(t *testing.T) {
	facade := testhelpers.LibraryFacadeStub{OpenFn: func(ctx context.Context, userID int64, itemID string, now time.Time) (*model.ContentGrant, error) {
		if itemID != "3-9" {
			t.Fatalf("unexpected item id %q", itemID)
		}
		return &model.ContentGrant{ItemID: itemID, URL: "https://cdn/9.pdf", Token: "grant-token", ExpiresAt: now.Add(2 * time.Minute)}, nil
	}}

	resp := performRequest(t, http.MethodPost, "/library/:id/open", "/library/3-9/open", NewLibraryHandler(facade).Open, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected no-store cache header, got %q", got)
	}
	var grant dto.OpenContentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &grant); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if grant.URL != "https://cdn/9.pdf" || grant.Token != "grant-token" {
		t.Fatalf("unexpected grant %+v", grant)
	}
}

func TestLibraryHandlerOpenFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "expired rental", err: domainErrors.ErrAccessExpired, status: http.StatusForbidden, message: "Accès expiré"},
		{name: "missing locator", err: domainErrors.ErrContentUnavailable, status: http.StatusConflict, message: "Contenu indisponible"},
		{name: "foreign item", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "storage failure", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.LibraryFacadeStub{OpenFn: func(context.Context, int64, string, time.Time) (*model.ContentGrant, error) {
				return nil, tc.err
			}}
			resp := performRequest(t, http.MethodPost, "/library/:id/open", "/library/3-9/open", NewLibraryHandler(facade).Open, asUser(7), nil, nil)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
			if tc.message != "" && !bytes.Contains(resp.Body.Bytes(), []byte(tc.message)) {
				t.Fatalf("expected message %q in body %s", tc.message, resp.Body.String())
			}
		})
	}
}

func TestOrderHandlerCheckout(t *testing.T) {
	body, _ := json.Marshal(dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{BookID: 9, Quantity: 1, Type: "loc-14j"}},
		PaymentMethod: "card",
	})

	facade := testhelpers.OrderFacadeStub{CheckoutFn: func(ctx context.Context, userID int64, draft model.CheckoutDraft) (*model.Order, error) {
		if userID != 7 {
			t.Fatalf("unexpected user id %d", userID)
		}
		if len(draft.Items) != 1 || draft.Items[0].Type != "loc-14j" {
			t.Fatalf("draft lost the line kind marker: %+v", draft.Items)
		}
		return &model.Order{ID: 3, UserID: userID, Number: "AB12CD34", Status: model.OrderStatusPending}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Checkout, asUser(7), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	empty := testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64, model.CheckoutDraft) (*model.Order, error) {
		return nil, domainErrors.ErrEmptyOrder
	}}
	resp = performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(empty).Checkout, asUser(7), []byte(`{"items":[]}`), map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}

func TestOrderHandlerListEmpty(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade).List, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestOrderHandlerGetHidesForeign(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrderFn: func(ctx context.Context, userID, orderID int64) (*model.Order, error) {
		if orderID != 3 {
			t.Fatalf("unexpected order id %d", orderID)
		}
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/3", NewOrderHandler(facade).Get, asUser(7), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestPaymentHandlerCreateIntent(t *testing.T) {
	body, _ := json.Marshal(dto.CreateIntentRequest{Amount: 29.99, Currency: "cad"})

	facade := testhelpers.PaymentFacadeStub{CreateIntentFn: func(ctx context.Context, userID int64, amount float64, currency, description string, orderID *int64) (*model.PaymentIntent, string, error) {
		return &model.PaymentIntent{ID: 5, UserID: userID, AmountCents: 2999, Currency: currency, Status: model.IntentStatusProcessing}, "cs_secret", nil
	}}
	resp := performRequest(t, http.MethodPost, "/payments/intents", "/payments/intents", NewPaymentHandler(facade).CreateIntent, asUser(7), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var intent dto.IntentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &intent); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if intent.ClientSecret != "cs_secret" || intent.Amount != 29.99 {
		t.Fatalf("unexpected intent response %+v", intent)
	}

	invalid := testhelpers.PaymentFacadeStub{CreateIntentFn: func(context.Context, int64, float64, string, string, *int64) (*model.PaymentIntent, string, error) {
		return nil, "", domainErrors.ErrInvalidAmount
	}}
	resp = performRequest(t, http.MethodPost, "/payments/intents", "/payments/intents", NewPaymentHandler(invalid).CreateIntent, asUser(7), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}

	down := testhelpers.PaymentFacadeStub{CreateIntentFn: func(context.Context, int64, float64, string, string, *int64) (*model.PaymentIntent, string, error) {
		return nil, "", errors.New("processor unreachable")
	}}
	resp = performRequest(t, http.MethodPost, "/payments/intents", "/payments/intents", NewPaymentHandler(down).CreateIntent, asUser(7), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", resp.Code)
	}
}

func TestPaymentHandlerHistoryOmitsClientSecret(t *testing.T) {
	facade := testhelpers.PaymentFacadeStub{HistoryFn: func(context.Context, int64) ([]model.PaymentIntent, error) {
		return []model.PaymentIntent{{ID: 5, AmountCents: 2999, Currency: "cad", Status: model.IntentStatusSucceeded}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/payments", "/payments", NewPaymentHandler(facade).History, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("clientSecret")) {
		t.Fatal("history must not expose client secrets")
	}
}

func TestCatalogHandlerListParsesFilters(t *testing.T) {
	facade := testhelpers.CatalogFacadeStub{BooksFn: func(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
		if filter.Search != "zola" || filter.Format != "numerique" {
			t.Fatalf("unexpected filter %+v", filter)
		}
		if filter.Page != 2 || filter.Limit != 5 {
			t.Fatalf("pagination not parsed: %+v", filter)
		}
		return []model.Book{{ID: 1, Title: "Germinal"}}, 1, nil
	}}
	resp := performRequest(t, http.MethodGet, "/books", "/books?search=zola&bookType=numerique&page=2&limit=5", NewCatalogHandler(facade).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAdminHandlerUpdateUserRole(t *testing.T) {
	body, _ := json.Marshal(dto.UpdateRoleRequest{Role: "moderator"})
	facade := testhelpers.AdminFacadeStub{SetRoleFn: func(ctx context.Context, id int64, role model.Role) error {
		if id != 4 {
			t.Fatalf("unexpected user id %d", id)
		}
		return domainErrors.ErrForbidden
	}}
	resp := performRequest(t, http.MethodPatch, "/users/:id/role", "/users/4/role", NewAdminHandler(facade).UpdateUserRole, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}

func TestAdminHandlerDeleteUserSelf(t *testing.T) {
	facade := testhelpers.AdminFacadeStub{RemoveUserFn: func(ctx context.Context, actorID, id int64) error {
		if actorID != 1 || id != 1 {
			t.Fatalf("unexpected ids %d %d", actorID, id)
		}
		return domainErrors.ErrForbidden
	}}
	resp := performRequest(t, http.MethodDelete, "/users/:id", "/users/1", NewAdminHandler(facade).DeleteUser, asUser(1), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestAdminHandlerUpdateOrderStatus(t *testing.T) {
	body, _ := json.Marshal(dto.UpdateOrderStatusRequest{Status: "shipped"})
	facade := testhelpers.AdminFacadeStub{SetOrderStatusFn: func(ctx context.Context, orderID int64, status model.OrderStatus) error {
		if orderID != 3 || status != "shipped" {
			t.Fatalf("unexpected update %d %s", orderID, status)
		}
		return nil
	}}
	resp := performRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/3/status", NewAdminHandler(facade).UpdateOrderStatus, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestProfileHandlerDelete(t *testing.T) {
	deleted := int64(0)
	facade := testhelpers.AuthFacadeStub{DeleteAccountFn: func(ctx context.Context, userID int64) error {
		deleted = userID
		return nil
	}}
	resp := performRequest(t, http.MethodDelete, "/profile", "/profile", NewProfileHandler(facade).Delete, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if deleted != 7 {
		t.Fatalf("expected user 7 deleted, got %d", deleted)
	}
}

func TestProfileHandlerChangePassword(t *testing.T) {
	body, _ := json.Marshal(dto.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "new"})
	facade := testhelpers.AuthFacadeStub{ChangePasswordFn: func(ctx context.Context, userID int64, current, next string) error {
		if current != "old" || next != "new" {
			t.Fatalf("unexpected rotation %q %q", current, next)
		}
		return nil
	}}
	resp := performRequest(t, http.MethodPost, "/profile/password", "/profile/password", NewProfileHandler(facade).ChangePassword, asUser(7), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	wrong := testhelpers.AuthFacadeStub{ChangePasswordFn: func(context.Context, int64, string, string) error {
		return domainErrors.ErrInvalidCredentials
	}}
	resp = performRequest(t, http.MethodPost, "/profile/password", "/profile/password", NewProfileHandler(wrong).ChangePassword, asUser(7), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAdminHandlerCreateUser(t *testing.T) {
	body, _ := json.Marshal(dto.CreateUserRequest{Email: "new@example.com", Name: "New", Role: "customer"})
	facade := testhelpers.AdminFacadeStub{AddUserFn: func(ctx context.Context, email, name string, role model.Role) (*model.User, error) {
		if email != "new@example.com" || role != model.RoleCustomer {
			t.Fatalf("unexpected creation %q %q", email, role)
		}
		return &model.User{ID: 4, Email: email, Name: name, Role: role}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/users", "/users", NewAdminHandler(facade).CreateUser, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("TMP-")) || bytes.Contains(resp.Body.Bytes(), []byte("password")) {
		t.Fatal("response must not echo credentials")
	}

	duplicate := testhelpers.AdminFacadeStub{AddUserFn: func(context.Context, string, string, model.Role) (*model.User, error) {
		return nil, domainErrors.ErrAlreadyExists
	}}
	resp = performRequest(t, http.MethodPost, "/users", "/users", NewAdminHandler(duplicate).CreateUser, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestAdminHandlerGetUser(t *testing.T) {
	facade := testhelpers.AdminFacadeStub{UserFn: func(ctx context.Context, id int64) (*model.User, error) {
		if id != 4 {
			t.Fatalf("unexpected user id %d", id)
		}
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/users/:id", "/users/4", NewAdminHandler(facade).User, asUser(1), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
