package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/franciscosanchezn/gin-relief-api/internal/services"
	"github.com/franciscosanchezn/gin-relief-api/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	registerErr error
	token       string
	authErr     error
}

func (f *fakeUsers) Register(context.Context, string, string, string) error { return f.registerErr }

func (f *fakeUsers) Authenticate(context.Context, string, string) (string, error) {
	return f.token, f.authErr
}

type fakeResources struct {
	err     error
	doc     models.Document
	created models.Document
}

func (f *fakeResources) List(context.Context) ([]models.Document, error) {
	return []models.Document{}, f.err
}

func (f *fakeResources) Create(_ context.Context, doc models.Document) (models.InsertResult, error) {
	f.created = doc
	return models.InsertResult{Acknowledged: true, InsertedID: "64b7f0c2a1b2c3d4e5f60718"}, f.err
}

func (f *fakeResources) Get(context.Context, string) (models.Document, error) { return f.doc, f.err }

func (f *fakeResources) Update(context.Context, string, models.Document) (models.UpdateResult, error) {
	return models.UpdateResult{Acknowledged: true}, f.err
}

func (f *fakeResources) Delete(context.Context, string) (models.DeleteResult, error) {
	return models.DeleteResult{Acknowledged: true}, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func serve(router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, models.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp models.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func authRouter(users services.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ac := NewAuthController(users)
	router.POST("/register", ac.Register)
	router.POST("/login", ac.Login)
	return router
}

func supplyRouter(svc services.ResourceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	sc := NewSupplyController(svc)
	router.GET("/supplies", sc.GetAllSupplies)
	router.POST("/supply", sc.CreateSupply)
	router.GET("/supply/:id", sc.GetSupplyByID)
	router.PUT("/supply/:id", sc.UpdateSupply)
	router.DELETE("/supply/:id", sc.DeleteSupply)
	return router
}

func TestRegisterOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		body       string
		wantStatus int
		wantCode   string
	}{
		{"created", nil, `{"name":"Ada","email":"a@b.c","password":"pw"}`, http.StatusCreated, ""},
		{"duplicate email", services.ErrUserExists, `{"email":"a@b.c","password":"pw"}`, http.StatusConflict, models.ErrConflict},
		{"password too long", fmt.Errorf("hash password: %w", bcrypt.ErrPasswordTooLong), `{"password":"x"}`, http.StatusBadRequest, models.ErrBadRequest},
		{"store failure", errors.New("connection reset"), `{"email":"a@b.c"}`, http.StatusInternalServerError, models.ErrInternalServer},
		{"malformed body", nil, `{"email":`, http.StatusBadRequest, models.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := authRouter(&fakeUsers{registerErr: tt.err})

			w, resp := serve(router, http.MethodPost, "/register", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				assert.True(t, resp.Success)
				assert.Equal(t, "User registered successfully", resp.Message)
				return
			}
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestLoginOutcomes(t *testing.T) {
	t.Run("token issued", func(t *testing.T) {
		w, resp := serve(authRouter(&fakeUsers{token: "signed.jwt.token"}), http.MethodPost, "/login", `{"email":"a@b.c","password":"pw"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "signed.jwt.token", resp.Token)
		assert.Equal(t, "Login successful", resp.Message)
	})

	t.Run("bad credentials", func(t *testing.T) {
		w, resp := serve(authRouter(&fakeUsers{authErr: services.ErrInvalidCredentials}), http.MethodPost, "/login", `{"email":"a@b.c","password":"pw"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", resp.Message)
		assert.Empty(t, resp.Token)
	})

	t.Run("store failure", func(t *testing.T) {
		w, _ := serve(authRouter(&fakeUsers{authErr: errors.New("timeout")}), http.MethodPost, "/login", `{"email":"a@b.c","password":"pw"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSupplyRoutesAnswerWithResourceStatus(t *testing.T) {
	router := supplyRouter(&fakeResources{doc: models.Document{"_id": "64b7f0c2a1b2c3d4e5f60718"}})
	id := "/supply/64b7f0c2a1b2c3d4e5f60718"

	for _, route := range []struct{ method, path, body string }{
		{http.MethodGet, "/supplies", ""},
		{http.MethodPost, "/supply", `{"title":"Rice"}`},
		{http.MethodGet, id, ""},
		{http.MethodPut, id, `{"title":"Rice"}`},
		{http.MethodDelete, id, ""},
	} {
		w, resp := serve(router, route.method, route.path, route.body)
		assert.Equal(t, ResourceStatus, w.Code, route.method+" "+route.path)
		assert.True(t, resp.Success, route.method+" "+route.path)
	}
}

func TestGetSupplyFoundNull(t *testing.T) {
	router := supplyRouter(&fakeResources{})

	w, _ := serve(router, http.MethodGet, "/supply/64b7f0c2a1b2c3d4e5f60718", "")

	assert.Equal(t, ResourceStatus, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Supply is retrieve successfully!","data":null}`, w.Body.String())
}

func TestSupplyErrorMapping(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		router := supplyRouter(&fakeResources{err: store.ErrInvalidID})
		w, resp := serve(router, http.MethodDelete, "/supply/zzz", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, models.ErrInvalidID, resp.Error.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		router := supplyRouter(&fakeResources{err: errors.New("server selection timeout")})
		w, resp := serve(router, http.MethodGet, "/supplies", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, models.ErrInternalServer, resp.Error.Code)
		assert.NotContains(t, w.Body.String(), "server selection timeout")
	})

	t.Run("body is not an object", func(t *testing.T) {
		router := supplyRouter(&fakeResources{})
		w, resp := serve(router, http.MethodPost, "/supply", `"rice"`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, models.ErrInvalidBody, resp.Error.Code)
	})
}

func TestCreateWithEmptyBodyStoresEmptyDocument(t *testing.T) {
	fake := &fakeResources{}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	dc := NewDonorController(fake)
	router.POST("/donor", dc.Create)

	w, resp := serve(router, http.MethodPost, "/donor", "")

	assert.Equal(t, ResourceStatus, w.Code)
	assert.Equal(t, "Donor created successfully!", resp.Message)
	assert.NotNil(t, fake.created)
	assert.Empty(t, fake.created)
}

func TestCollectionMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	controllers := map[string]*CollectionController{
		"Community post retrieve successfully!": NewCommunityController(&fakeResources{}),
		"Volunteer retrieve successfully!":      NewVolunteerController(&fakeResources{}),
		"Donor retrieve successfully!":          NewDonorController(&fakeResources{}),
	}

	for message, cc := range controllers {
		router := gin.New()
		router.GET("/list", cc.List)

		w, resp := serve(router, http.MethodGet, "/list", "")
		assert.Equal(t, ResourceStatus, w.Code)
		assert.Equal(t, message, resp.Message)
	}
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tt := range []struct {
		name       string
		pingErr    error
		wantStatus int
		wantState  string
	}{
		{"store reachable", nil, http.StatusOK, "healthy"},
		{"store down", errors.New("no reachable servers"), http.StatusServiceUnavailable, "unhealthy"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewStatusController(fakePinger{err: tt.pingErr}, "relief").Health)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantState, body["status"])
			assert.Equal(t, "relief", body["service"])
		})
	}
}
