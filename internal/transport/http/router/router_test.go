package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"store-ratings/internal/core/auth"
	"store-ratings/internal/domain"
	"store-ratings/internal/repo"
	"store-ratings/internal/service"
	"store-ratings/internal/transport/http/router"
	"store-ratings/pkg/utils"
)

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
	jwt    *auth.JWTer
	users  *repo.UserRepo
	stores *repo.StoreRepo
}

func newApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Store{}, &domain.Rating{}))

	users := repo.NewUserRepo(db)
	stores := repo.NewStoreRepo(db)
	ratings := repo.NewRatingRepo(db)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "store-ratings", TTL: time.Hour}

	engine := router.NewEngine(router.Deps{
		Log:      zap.NewNop(),
		DB:       db,
		JWT:      jwter,
		Accounts: service.NewAccountService(users, nil),
		Ratings:  service.NewRatingService(ratings, stores, nil),
		Stores:   service.NewStoreService(stores, ratings, nil),
		Admin:    service.NewAdminService(users, stores, ratings, nil),
	})
	return &testApp{engine: engine, db: db, jwt: jwter, users: users, stores: stores}
}

func (a *testApp) seedUser(t *testing.T, name, email, role string) (*domain.User, string) {
	t.Helper()
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword("Abcdef1!"),
		Address:      "somewhere",
		Role:         role,
	}
	require.NoError(t, a.users.Create(u))
	tok, err := a.jwt.Issue(u.ID, u.Role)
	require.NoError(t, err)
	return u, tok
}

func (a *testApp) seedStore(t *testing.T, name, email string, ownerID *string) *domain.Store {
	t.Helper()
	s := &domain.Store{
		ID:      utils.NewID(),
		Name:    name,
		Email:   email,
		Address: "main street",
		OwnerID: ownerID,
	}
	require.NoError(t, a.stores.Create(s))
	return s
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func TestRegisterValidationAndSuccess(t *testing.T) {
	app := newApp(t)

	w, env := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": strings.Repeat("n", 19), "email": "a@example.com",
		"password": "Abcdef1!", "address": "addr",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name must be between 20 and 60 characters", env.Msg)

	w, env = app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": strings.Repeat("n", 20), "email": "a@example.com",
		"password": "Abcdef1!", "address": "addr",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var out struct {
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.NotEmpty(t, out.UserID)

	w, env = app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": strings.Repeat("n", 20), "email": "b@example.com",
		"password": "Abcdef1!", "address": strings.Repeat("x", 401),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Address must be less than 400 characters", env.Msg)
}

func TestLoginSetsCookie(t *testing.T) {
	app := newApp(t)
	app.seedUser(t, "Some Registered Customer", "a@example.com", domain.RoleUser)

	w, env := app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "a@example.com", "password": "Abcdef1!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.NotEmpty(t, out.Token)
	require.NotNil(t, out.User)
	assert.Equal(t, "a@example.com", out.User.Email)

	var sessionCookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == auth.CookieName {
			sessionCookie = ck
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, out.Token, sessionCookie.Value)

	// 未知邮箱 404，密码错误 401
	w, _ = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "Abcdef1!",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "a@example.com", "password": "Wrongpw1!",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newApp(t)
	w, _ := app.do(t, http.MethodGet, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == auth.CookieName {
			assert.Empty(t, ck.Value)
			assert.Less(t, ck.MaxAge, 0)
		}
	}
}

func TestUnauthenticatedRejected(t *testing.T) {
	app := newApp(t)
	for _, path := range []string{"/api/stores", "/api/admin/dashboard", "/api/user/profile"} {
		w, _ := app.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	// 伪造 token 同样 401
	other := &auth.JWTer{Secret: []byte("attacker"), Issuer: "store-ratings", TTL: time.Hour}
	tok, err := other.Issue("x", domain.RoleAdmin)
	require.NoError(t, err)
	w, _ := app.do(t, http.MethodGet, "/api/admin/dashboard", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminEndpointsForbiddenForOtherRoles(t *testing.T) {
	app := newApp(t)
	_, userTok := app.seedUser(t, "Some Registered Customer", "u@example.com", domain.RoleUser)
	_, ownerTok := app.seedUser(t, "Shop Owner Without Store", "o@example.com", domain.RoleOwner)

	paths := []string{"/api/admin/dashboard", "/api/admin/users", "/api/admin/stores", "/api/admin/store-owners"}
	for _, tok := range []string{userTok, ownerTok} {
		for _, path := range paths {
			w, _ := app.do(t, http.MethodGet, path, tok, nil)
			assert.Equal(t, http.StatusForbidden, w.Code, path)
		}
		// 载荷合法也一样 403
		w, _ := app.do(t, http.MethodPost, "/api/admin/add-users", tok, gin.H{
			"name": strings.Repeat("n", 20), "email": "new@example.com",
			"password": "Abcdef1!", "address": "addr", "role": "user",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}

func TestAdminCreateAndList(t *testing.T) {
	app := newApp(t)
	_, adminTok := app.seedUser(t, "Platform Administrator One", "admin@example.com", domain.RoleAdmin)

	// 建店主
	w, env := app.do(t, http.MethodPost, "/api/admin/add-users", adminTok, gin.H{
		"name": "Newly Created Store Owner", "email": "owner@example.com",
		"password": "Abcdef1!", "address": "addr", "role": "owner",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// 非法角色
	w, env = app.do(t, http.MethodPost, "/api/admin/add-users", adminTok, gin.H{
		"name": "Another Prospective Person", "email": "x@example.com",
		"password": "Abcdef1!", "address": "addr", "role": "root",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role provided.", env.Msg)

	// 建门店（指定店主）
	w, env = app.do(t, http.MethodPost, "/api/admin/add-stores", adminTok, gin.H{
		"name": "First Street Grocery Store", "email": "s1@example.com",
		"address": "main street", "owner_id": created.UserID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 普通用户不能当店主
	plain, _ := app.seedUser(t, "Some Registered Customer", "plain@example.com", domain.RoleUser)
	w, env = app.do(t, http.MethodPost, "/api/admin/add-stores", adminTok, gin.H{
		"name": "Second Avenue Grocery Mart", "email": "s2@example.com",
		"address": "main street", "owner_id": plain.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid owner_id. No such user with role 'owner'.", env.Msg)

	// 不带 owner_id 允许
	w, _ = app.do(t, http.MethodPost, "/api/admin/add-stores", adminTok, gin.H{
		"name": "Second Avenue Grocery Mart", "email": "s2@example.com",
		"address": "main street",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// dashboard
	w, env = app.do(t, http.MethodGet, "/api/admin/dashboard", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash service.Dashboard
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.EqualValues(t, 3, dash.Stats.TotalUsers)
	assert.EqualValues(t, 2, dash.Stats.TotalStores)
	assert.EqualValues(t, 0, dash.Stats.TotalRatings)

	// store-owners
	w, env = app.do(t, http.MethodGet, "/api/admin/store-owners", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var owners []service.OwnerRef
	require.NoError(t, json.Unmarshal(env.Data, &owners))
	require.Len(t, owners, 1)
	assert.Equal(t, created.UserID, owners[0].ID)
}

func TestRatingLifecycleOverHTTP(t *testing.T) {
	app := newApp(t)
	_, userTok := app.seedUser(t, "Some Registered Customer", "u@example.com", domain.RoleUser)
	st := app.seedStore(t, "First Street Grocery Store", "s1@example.com", nil)

	// PATCH 先于评分 → 404
	w, env := app.do(t, http.MethodPatch, "/api/user/ratings", userTok, gin.H{
		"store_id": st.ID, "rating": 3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Rating not found. You must rate the store first.", env.Msg)

	// 提交
	w, env = app.do(t, http.MethodPost, "/api/user/ratings", userTok, gin.H{
		"store_id": st.ID, "rating": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var out struct {
		Rating *domain.Rating `json:"rating"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotNil(t, out.Rating)
	assert.Equal(t, 4, out.Rating.Rating)

	// 重复提交覆盖
	w, _ = app.do(t, http.MethodPost, "/api/user/ratings", userTok, gin.H{
		"store_id": st.ID, "rating": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var n int64
	require.NoError(t, app.db.Model(&domain.Rating{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// 超范围
	w, env = app.do(t, http.MethodPost, "/api/user/ratings", userTok, gin.H{
		"store_id": st.ID, "rating": 9,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Rating must be between 1 and 5.", env.Msg)

	// 不存在的门店
	w, _ = app.do(t, http.MethodPost, "/api/user/ratings", userTok, gin.H{
		"store_id": "ghost", "rating": 3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 我的评分
	w, env = app.do(t, http.MethodGet, "/api/user/ratings/my", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine struct {
		Ratings []domain.MyRating `json:"ratings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine.Ratings, 1)
	assert.Equal(t, 2, mine.Ratings[0].Rating)

	// 别人删不掉
	_, otherTok := app.seedUser(t, "Robert The Other Customer", "b@example.com", domain.RoleUser)
	w, _ = app.do(t, http.MethodDelete, "/api/user/ratings/"+mine.Ratings[0].ID, otherTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 自己删得掉
	w, _ = app.do(t, http.MethodDelete, "/api/user/ratings/"+mine.Ratings[0].ID, userTok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRatingEndpointsRequireUserRole(t *testing.T) {
	app := newApp(t)
	_, ownerTok := app.seedUser(t, "Shop Owner Without Store", "o@example.com", domain.RoleOwner)
	_, adminTok := app.seedUser(t, "Platform Administrator One", "a@example.com", domain.RoleAdmin)
	st := app.seedStore(t, "First Street Grocery Store", "s1@example.com", nil)

	for _, tok := range []string{ownerTok, adminTok} {
		w, _ := app.do(t, http.MethodPost, "/api/user/ratings", tok, gin.H{
			"store_id": st.ID, "rating": 3,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}

func TestStoreListingForAllRoles(t *testing.T) {
	app := newApp(t)
	_, userTok := app.seedUser(t, "Some Registered Customer", "u@example.com", domain.RoleUser)
	_, ownerTok := app.seedUser(t, "Shop Owner Without Store", "o@example.com", domain.RoleOwner)
	st := app.seedStore(t, "First Street Grocery Store", "s1@example.com", nil)

	w, _ := app.do(t, http.MethodPost, "/api/user/ratings", userTok, gin.H{
		"store_id": st.ID, "rating": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := app.do(t, http.MethodGet, "/api/stores", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Stores []domain.StoreWithRating `json:"stores"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.Stores, 1)
	assert.Equal(t, 5.0, out.Stores[0].Rating)
	require.NotNil(t, out.Stores[0].MyRating)
	assert.Equal(t, 5, *out.Stores[0].MyRating)

	// 店主也能浏览，但看不到 my_rating
	w, env = app.do(t, http.MethodGet, "/api/stores", ownerTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	out.Stores = nil // json.Unmarshal 复用切片元素，避免上一次解码的 my_rating 残留
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.Stores, 1)
	assert.Nil(t, out.Stores[0].MyRating)
}

func TestOwnerStoreRatingsView(t *testing.T) {
	app := newApp(t)
	owner, ownerTok := app.seedUser(t, "Shop Owner With One Store", "o@example.com", domain.RoleOwner)
	_, poorTok := app.seedUser(t, "Owner Without Any Stores!", "none@example.com", domain.RoleOwner)
	_, userTok := app.seedUser(t, "Some Registered Customer", "u@example.com", domain.RoleUser)
	st := app.seedStore(t, "First Street Grocery Store", "s1@example.com", &owner.ID)

	w, _ := app.do(t, http.MethodPost, "/api/user/ratings", userTok, gin.H{
		"store_id": st.ID, "rating": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 普通用户访问店主接口 → 403
	w, _ = app.do(t, http.MethodGet, "/api/stores/ratings/my", userTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 没有门店的店主 → 404
	w, _ = app.do(t, http.MethodGet, "/api/stores/ratings/my", poorTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := app.do(t, http.MethodGet, "/api/stores/ratings/my", ownerTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view service.OwnerStoreView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, st.ID, view.Store.ID)
	assert.Equal(t, 3.0, view.AverageRating)
	assert.Equal(t, 1, view.TotalRatings)
	require.Len(t, view.Ratings, 1)
	assert.Equal(t, "u@example.com", view.Ratings[0].UserEmail)

	// 名下所有门店的评分
	w, env = app.do(t, http.MethodGet, "/api/stores/ratings", ownerTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all struct {
		Ratings       []domain.StoreRating `json:"ratings"`
		AverageRating float64              `json:"averageRating"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all.Ratings, 1)
	assert.Equal(t, 3.0, all.AverageRating)
}

func TestPasswordUpdateAndProfile(t *testing.T) {
	app := newApp(t)
	_, tok := app.seedUser(t, "Some Registered Customer", "u@example.com", domain.RoleUser)

	w, env := app.do(t, http.MethodPatch, "/api/user/update-password", tok, gin.H{
		"oldPassword": "Wrongpw1!", "newPassword": "Newpass1!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Old password is incorrect", env.Msg)

	w, _ = app.do(t, http.MethodPatch, "/api/user/update-password", tok, gin.H{
		"oldPassword": "Abcdef1!", "newPassword": "Newpass1!",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "u@example.com", "password": "Newpass1!",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = app.do(t, http.MethodGet, "/api/user/profile", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var prof struct {
		User *domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &prof))
	require.NotNil(t, prof.User)
	assert.Equal(t, "u@example.com", prof.User.Email)
}
