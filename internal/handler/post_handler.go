package handler

import (
	"errors"
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

const indexTitle = "Последние обновления на сайте"

type PostHandler struct {
	feed   *service.FeedService
	posts  *service.PostService
	groups *service.GroupService
}

func NewPostHandler(feed *service.FeedService, posts *service.PostService, groups *service.GroupService) *PostHandler {
	return &PostHandler{feed: feed, posts: posts, groups: groups}
}

// Index 首页
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.feed.Home(c.Request.Context(), c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "posts/index.html", gin.H{"title": indexTitle, "page_obj": page})
}

// GroupPosts 分组页
func (h *PostHandler) GroupPosts(c *gin.Context) {
	feed, err := h.feed.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"title":    "Записи сообщества " + feed.Group.Title,
		"group":    feed.Group,
		"page_obj": feed.Page,
	})
}

// Profile 个人页
func (h *PostHandler) Profile(c *gin.Context) {
	feed, err := h.feed.Profile(c.Request.Context(), c.Param("username"), middleware.UserID(c), c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "posts/profile.html", gin.H{
		"title":    "Профайл пользователя " + feed.Author.FullName(),
		"profile":  feed,
		"author":   feed.Author,
		"page_obj": feed.Page,
	})
}

// FollowIndex 关注流
func (h *PostHandler) FollowIndex(c *gin.Context) {
	page, err := h.feed.Following(c.Request.Context(), middleware.UserID(c), c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "posts/follow.html", gin.H{"title": "Ваши подписки", "page_obj": page})
}

// PostDetail 帖子详情
func (h *PostHandler) PostDetail(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	detail, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"title":             "Пост " + detail.Post.String(),
		"post":              detail.Post,
		"comments":          detail.Comments,
		"author_post_count": detail.AuthorPostCount,
	})
}

func (h *PostHandler) renderPostForm(c *gin.Context, code int, data gin.H) {
	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	data["groups"] = groups
	if _, ok := data["form"]; !ok {
		data["form"] = postFormView{}
	}
	render(c, code, "posts/create_post.html", data)
}

// readInput 解析表单和上传文件; 返回的 close 需要在使用完后调用
func readInput(c *gin.Context) (service.PostInput, postFormView, map[string]string, func()) {
	noop := func() {}
	var form PostForm
	errs := bindForm(c, &form)
	groupID, ok := parseGroup(form.Group)
	view := postFormView{Text: form.Text, GroupID: groupID}
	if !ok {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["group"] = service.ErrInvalidGroup.Error()
	}
	if errs != nil {
		return service.PostInput{}, view, errs, noop
	}

	in := service.PostInput{Text: form.Text, GroupID: groupID}
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return in, view, nil, noop
		}
		return in, view, map[string]string{"image": service.ErrInvalidImage.Error()}, noop
	}
	f, err := fh.Open()
	if err != nil {
		return in, view, map[string]string{"image": service.ErrInvalidImage.Error()}, noop
	}
	in.Upload = &service.ImageUpload{Name: fh.Filename, Size: fh.Size, Reader: f}
	return in, view, nil, func() { _ = f.Close() }
}

// PostCreate 新建帖子
func (h *PostHandler) PostCreate(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		h.renderPostForm(c, http.StatusOK, gin.H{"title": "Новый пост"})
		return
	}

	in, view, errs, closeUpload := readInput(c)
	defer closeUpload()
	if errs != nil {
		h.renderPostForm(c, http.StatusOK, gin.H{"title": "Новый пост", "form": view, "errors": errs})
		return
	}

	if _, err := h.posts.CreatePost(c.Request.Context(), middleware.UserID(c), in); err != nil {
		if fe, ok := asFieldError(err); ok {
			h.renderPostForm(c, http.StatusOK, gin.H{"title": "Новый пост", "form": view, "errors": fe})
			return
		}
		fail(c, err)
		return
	}
	redirect(c, profileURL(middleware.Username(c)))
}

// PostEdit 编辑帖子, 非作者跳回详情页
func (h *PostHandler) PostEdit(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	post, err := h.posts.PostForEdit(ctx, id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthor) {
			redirect(c, postURL(id))
			return
		}
		fail(c, err)
		return
	}

	data := gin.H{"title": "Редактировать пост", "is_edit": true, "post": post}
	if c.Request.Method == http.MethodGet {
		data["form"] = postFormView{Text: post.Text, GroupID: post.GroupID}
		h.renderPostForm(c, http.StatusOK, data)
		return
	}

	in, view, errs, closeUpload := readInput(c)
	defer closeUpload()
	data["form"] = view
	if errs != nil {
		data["errors"] = errs
		h.renderPostForm(c, http.StatusOK, data)
		return
	}

	if _, err = h.posts.EditPost(ctx, id, userID, in); err != nil {
		if errors.Is(err, service.ErrNotAuthor) {
			redirect(c, postURL(id))
			return
		}
		if fe, ok := asFieldError(err); ok {
			data["errors"] = fe
			h.renderPostForm(c, http.StatusOK, data)
			return
		}
		fail(c, err)
		return
	}
	redirect(c, postURL(id))
}

// PostDelete 作者删除帖子
func (h *PostHandler) PostDelete(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	err := h.posts.DeletePost(c.Request.Context(), id, middleware.UserID(c))
	switch {
	case err == nil:
		redirect(c, profileURL(middleware.Username(c)))
	case errors.Is(err, service.ErrNotAuthor):
		redirect(c, postURL(id))
	default:
		fail(c, err)
	}
}

// AddComment 评论无效时不保存, 直接跳回详情页
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	var form CommentForm
	text := ""
	if c.Request.Method == http.MethodPost && c.ShouldBind(&form) == nil {
		text = form.Text
	}

	_, err := h.posts.AddComment(c.Request.Context(), id, middleware.UserID(c), text)
	if err != nil && !errors.Is(err, service.ErrEmptyComment) {
		fail(c, err)
		return
	}
	redirect(c, postURL(id))
}
