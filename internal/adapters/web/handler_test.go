package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/actor"
	commentapp "yatube/internal/core/comment/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	"yatube/internal/core/post"
	postapp "yatube/internal/core/post/service"
	timelineapp "yatube/internal/core/timeline/service"
	userapp "yatube/internal/core/user/service"
	"yatube/internal/testutil"
)

type webFixture struct {
	db     *gorm.DB
	engine *gin.Engine
	users  *userapp.UserService
	posts  *postapp.PostService
}

func newWeb(t *testing.T) *webFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	logger := zap.NewNop()

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(db)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(db)

	users := userapp.NewUserService(userRepo, []byte("test-secret"), logger)
	posts := postapp.NewPostService(postRepo, groupRepo, userRepo, logger)
	posts.Now = testutil.NewClock().Now

	h, err := NewHandler(
		users,
		posts,
		commentapp.NewCommentService(dbadapter.NewCommentRepositoryDatabase(db), postRepo, logger),
		groupapp.NewGroupService(groupRepo, logger),
		followerapp.NewFollowerService(followerRepo, userRepo, nil, logger),
		timelineapp.NewTimelineService(postRepo, followerRepo, nil, logger),
		logger,
	)
	require.NoError(t, err)
	engine := gin.New()
	h.Register(engine)
	return &webFixture{db: db, engine: engine, users: users, posts: posts}
}

func (f *webFixture) login(t *testing.T, username string) (actor.Actor, string) {
	t.Helper()
	u := testutil.CreateUser(t, f.db, username)
	resp, err := f.users.LoginUser(context.Background(), userapp.LoginInput{Username: username, Password: "password"})
	require.NoError(t, err)
	return actor.New(u.ID, u.Username), resp.Token
}

func (f *webFixture) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	return f.send(t, httptest.NewRequest(http.MethodGet, path, nil), token)
}

func (f *webFixture) post(t *testing.T, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.send(t, req, token)
}

func (f *webFixture) send(t *testing.T, req *http.Request, token string) *httptest.ResponseRecorder {
	t.Helper()
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *webFixture) createPost(t *testing.T, a actor.Actor, text string) string {
	t.Helper()
	p, err := f.posts.CreatePost(context.Background(), a, postapp.CreatePostInput{Text: text})
	require.NoError(t, err)
	return p.ID
}

func TestIndexAndProfile(t *testing.T) {
	f := newWeb(t)
	leo, _ := f.login(t, "leo")
	f.createPost(t, leo, "first words")

	w := f.get(t, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "first words")

	w = f.get(t, "/leo/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Posts: 1")

	w = f.get(t, "/nobody/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = f.get(t, "/group/missing/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewPostRequiresLogin(t *testing.T) {
	f := newWeb(t)
	_, token := f.login(t, "leo")

	w := f.get(t, "/new_post/", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fnew_post%2F", w.Header().Get("Location"))

	w = f.get(t, "/new_post/", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.post(t, "/new_post/", token, url.Values{"text": {""}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text: This field is required.")

	w = f.post(t, "/new_post/", token, url.Values{"text": {"from the form"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var count int64
	require.NoError(t, f.db.Model(&post.Post{}).Where("text = ?", "from the form").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPostViewAndComments(t *testing.T) {
	f := newWeb(t)
	leo, _ := f.login(t, "leo")
	_, zoeToken := f.login(t, "zoe")
	id := f.createPost(t, leo, "discuss me")

	w := f.get(t, "/leo/"+id+"/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "discuss me")

	w = f.get(t, "/zoe/"+id+"/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.post(t, "/leo/"+id+"/comment/", "", url.Values{"text": {"hi"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login/"))

	w = f.post(t, "/leo/"+id+"/comment/", zoeToken, url.Values{"text": {"great post"}})
	require.Equal(t, http.StatusFound, w.Code)

	w = f.get(t, "/leo/"+id+"/", "")
	assert.Contains(t, w.Body.String(), "great post")
	assert.Contains(t, w.Body.String(), "Comments (1)")
}

func TestEditAndDeleteAreAuthorOnly(t *testing.T) {
	f := newWeb(t)
	leo, leoToken := f.login(t, "leo")
	_, zoeToken := f.login(t, "zoe")
	id := f.createPost(t, leo, "original")
	base := "/leo/" + id + "/"

	w := f.get(t, base+"edit/", zoeToken)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, base, w.Header().Get("Location"))

	w = f.post(t, base+"edit/", zoeToken, url.Values{"text": {"hijacked"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = f.post(t, base+"delete/", zoeToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.get(t, base+"edit/", leoToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "original")

	w = f.post(t, base+"edit/", leoToken, url.Values{"text": {"edited"}})
	require.Equal(t, http.StatusFound, w.Code)
	w = f.get(t, base, "")
	assert.Contains(t, w.Body.String(), "edited")

	w = f.post(t, base+"delete/", leoToken, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/leo/", w.Header().Get("Location"))
	w = f.get(t, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowFlow(t *testing.T) {
	f := newWeb(t)
	_, leoToken := f.login(t, "leo")
	zoe, _ := f.login(t, "zoe")
	ann, _ := f.login(t, "ann")
	f.createPost(t, zoe, "zoe writes")
	f.createPost(t, ann, "ann writes")

	w := f.get(t, "/follow/", "")
	assert.Equal(t, http.StatusFound, w.Code)

	w = f.get(t, "/zoe/", leoToken)
	assert.Contains(t, w.Body.String(), "/zoe/follow/")

	w = f.get(t, "/zoe/follow/", leoToken)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/zoe/", w.Header().Get("Location"))
	// following twice through the page is a no-op
	f.get(t, "/zoe/follow/", leoToken)

	w = f.get(t, "/zoe/", leoToken)
	assert.Contains(t, w.Body.String(), "/zoe/unfollow/")

	w = f.get(t, "/follow/", leoToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "zoe writes")
	assert.NotContains(t, w.Body.String(), "ann writes")

	w = f.get(t, "/zoe/unfollow/", leoToken)
	require.Equal(t, http.StatusFound, w.Code)
	w = f.get(t, "/zoe/unfollow/", leoToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.get(t, "/follow/", leoToken)
	assert.NotContains(t, w.Body.String(), "zoe writes")
}

func TestLoginLogoutAndSignup(t *testing.T) {
	f := newWeb(t)
	f.login(t, "leo")

	w := f.post(t, "/auth/login/", "", url.Values{"username": {"leo"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.post(t, "/auth/login/", "", url.Values{"username": {"leo"}, "password": {"password"}, "next": {"https://evil.example/"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.TokenCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	w = f.get(t, "/new_post/", cookies[0].Value)
	assert.Equal(t, http.StatusOK, w.Code)

	// a stale cookie degrades to an anonymous visit
	w = f.get(t, "/", "stale")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.post(t, "/auth/logout/", cookies[0].Value, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)

	w = f.post(t, "/auth/signup/", "", url.Values{"username": {"leo"}, "password": {"long enough"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	w = f.post(t, "/auth/signup/", "", url.Values{"username": {"newbie"}, "password": {"long enough"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/", w.Header().Get("Location"))
}
