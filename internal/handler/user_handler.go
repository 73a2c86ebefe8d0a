package handler

import (
	"net/http"
	"time"

	"yatube/internal/middleware"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc        *service.UserService
	emailSvc   *service.EmailService
	refreshTTL time.Duration
}

func NewUserHandler(svc *service.UserService, emailSvc *service.EmailService, refreshTTL time.Duration) *UserHandler {
	return &UserHandler{svc: svc, emailSvc: emailSvc, refreshTTL: refreshTTL}
}

// Signup 注册后直接登录
func (h *UserHandler) Signup(c *gin.Context) {
	data := gin.H{"title": "Зарегистрироваться"}
	if c.Request.Method == http.MethodGet {
		data["form"] = SignupForm{}
		render(c, http.StatusOK, "users/signup.html", data)
		return
	}

	var form SignupForm
	errs := bindForm(c, &form)
	data["form"] = form
	if errs != nil {
		data["errors"] = errs
		render(c, http.StatusOK, "users/signup.html", data)
		return
	}

	_, pair, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password1,
	})
	if err != nil {
		if fe, ok := asFieldError(err); ok {
			data["errors"] = fe
			render(c, http.StatusOK, "users/signup.html", data)
			return
		}
		fail(c, err)
		return
	}
	middleware.SetSessionCookies(c, pair, h.refreshTTL)
	redirect(c, "/")
}

// Login 登录接口, 成功后跳到 next
func (h *UserHandler) Login(c *gin.Context) {
	data := gin.H{"title": "Войти", "next": c.Query("next")}
	if c.Request.Method == http.MethodGet {
		data["form"] = LoginForm{}
		render(c, http.StatusOK, "users/login.html", data)
		return
	}

	var form LoginForm
	errs := bindForm(c, &form)
	if form.Next != "" {
		data["next"] = form.Next
	}
	form.Password = ""
	data["form"] = form
	if errs != nil {
		data["errors"] = errs
		render(c, http.StatusOK, "users/login.html", data)
		return
	}

	_, pair, err := h.svc.Login(c.Request.Context(), form.Username, c.PostForm("password"))
	if err != nil {
		if fe, ok := asFieldError(err); ok {
			data["errors"] = fe
			render(c, http.StatusOK, "users/login.html", data)
			return
		}
		fail(c, err)
		return
	}
	middleware.SetSessionCookies(c, pair, h.refreshTTL)
	redirect(c, safeNext(data["next"].(string)))
}

// Logout 清除会话
func (h *UserHandler) Logout(c *gin.Context) {
	if userID := middleware.UserID(c); userID != 0 {
		if err := h.svc.Logout(c.Request.Context(), userID); err != nil {
			fail(c, err)
			return
		}
	}
	middleware.ClearSessionCookies(c)
	c.Set(middleware.ContextUserIDKey, uint64(0))
	c.Set(middleware.ContextUsernameKey, "")
	render(c, http.StatusOK, "users/logged_out.html", gin.H{"title": "Вы вышли из системы"})
}

// PasswordChange 登录态修改密码, 成功后需要重新登录
func (h *UserHandler) PasswordChange(c *gin.Context) {
	data := gin.H{"title": "Изменить пароль"}
	if c.Request.Method == http.MethodGet {
		render(c, http.StatusOK, "users/password_change_form.html", data)
		return
	}

	var form PasswordChangeForm
	if errs := bindForm(c, &form); errs != nil {
		data["errors"] = errs
		render(c, http.StatusOK, "users/password_change_form.html", data)
		return
	}
	err := h.svc.ChangePassword(c.Request.Context(), middleware.UserID(c), form.OldPassword, form.NewPassword1)
	if err != nil {
		if fe, ok := asFieldError(err); ok {
			data["errors"] = fe
			render(c, http.StatusOK, "users/password_change_form.html", data)
			return
		}
		fail(c, err)
		return
	}
	middleware.ClearSessionCookies(c)
	c.Set(middleware.ContextUserIDKey, uint64(0))
	c.Set(middleware.ContextUsernameKey, "")
	render(c, http.StatusOK, "users/password_change_done.html", gin.H{"title": "Пароль изменён"})
}

// PasswordReset 发送重置密码验证码
func (h *UserHandler) PasswordReset(c *gin.Context) {
	data := gin.H{"title": "Сброс пароля"}
	if c.Request.Method == http.MethodGet {
		data["form"] = PasswordResetForm{}
		render(c, http.StatusOK, "users/password_reset_form.html", data)
		return
	}

	var form PasswordResetForm
	errs := bindForm(c, &form)
	data["form"] = form
	if errs != nil {
		data["errors"] = errs
		render(c, http.StatusOK, "users/password_reset_form.html", data)
		return
	}
	if err := h.emailSvc.SendResetCode(c.Request.Context(), form.Email); err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "users/password_reset_done.html", gin.H{"title": "Сброс пароля", "email": form.Email})
}

// PasswordResetConfirm 校验验证码并设置新密码
func (h *UserHandler) PasswordResetConfirm(c *gin.Context) {
	data := gin.H{"title": "Новый пароль"}
	if c.Request.Method == http.MethodGet {
		data["form"] = PasswordResetConfirmForm{Email: c.Query("email")}
		render(c, http.StatusOK, "users/password_reset_confirm.html", data)
		return
	}

	var form PasswordResetConfirmForm
	errs := bindForm(c, &form)
	form.NewPassword1, form.NewPassword2 = "", ""
	data["form"] = form
	if errs != nil {
		data["errors"] = errs
		render(c, http.StatusOK, "users/password_reset_confirm.html", data)
		return
	}
	err := h.svc.ResetPassword(c.Request.Context(), form.Email, form.Code, c.PostForm("new_password1"))
	if err != nil {
		if fe, ok := asFieldError(err); ok {
			data["errors"] = fe
			render(c, http.StatusOK, "users/password_reset_confirm.html", data)
			return
		}
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "users/password_reset_complete.html", gin.H{"title": "Пароль сохранён"})
}
