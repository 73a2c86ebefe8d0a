package handler

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"yatube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return service.ValidUsername(fl.Field().String())
		})
	}
}

type PostForm struct {
	Text  string `form:"text" binding:"required"`
	Group string `form:"group"`
}

// postFormView 模板回显用
type postFormView struct {
	Text    string
	GroupID *uint64
}

type CommentForm struct {
	Text string `form:"text" binding:"required"`
}

type SignupForm struct {
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" binding:"max=150"`
	Username  string `form:"username" binding:"required,max=150,username"`
	Email     string `form:"email" binding:"required,email,max=254"`
	Password1 string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type PasswordChangeForm struct {
	OldPassword  string `form:"old_password" binding:"required"`
	NewPassword1 string `form:"new_password1" binding:"required,min=8"`
	NewPassword2 string `form:"new_password2" binding:"required,eqfield=NewPassword1"`
}

type PasswordResetForm struct {
	Email string `form:"email" binding:"required,email"`
}

type PasswordResetConfirmForm struct {
	Email        string `form:"email" binding:"required,email"`
	Code         string `form:"code" binding:"required,len=6,numeric"`
	NewPassword1 string `form:"new_password1" binding:"required,min=8"`
	NewPassword2 string `form:"new_password2" binding:"required,eqfield=NewPassword1"`
}

var formFieldNames = map[string]string{
	"Text":         "text",
	"Group":        "group",
	"FirstName":    "first_name",
	"LastName":     "last_name",
	"Username":     "username",
	"Email":        "email",
	"Password":     "password",
	"Password1":    "password1",
	"Password2":    "password2",
	"OldPassword":  "old_password",
	"NewPassword1": "new_password1",
	"NewPassword2": "new_password2",
	"Code":         "code",
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле."
	case "email":
		return "Введите правильный адрес электронной почты."
	case "min":
		return "Значение слишком короткое (минимум " + fe.Param() + " символов)."
	case "max":
		return "Значение слишком длинное (максимум " + fe.Param() + " символов)."
	case "eqfield":
		return "Введённые пароли не совпадают."
	case "len", "numeric":
		return "Введите код из 6 цифр."
	case "username":
		return service.ErrInvalidUsername.Error()
	}
	return "Некорректное значение."
}

// formErrors validator 的错误转成 字段名 -> 提示
func formErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			name, ok := formFieldNames[fe.Field()]
			if !ok {
				name = strings.ToLower(fe.Field())
			}
			if _, seen := out[name]; !seen {
				out[name] = fieldMessage(fe)
			}
		}
		return out
	}
	out["__all__"] = "Проверьте введённые данные."
	return out
}

// serviceFieldErrors 可以显示在表单上的业务错误
var serviceFieldErrors = map[error]string{
	service.ErrEmptyText:          "text",
	service.ErrInvalidGroup:       "group",
	service.ErrInvalidImage:       "image",
	service.ErrImageTooLarge:      "image",
	service.ErrUsernameTaken:      "username",
	service.ErrInvalidUsername:    "username",
	service.ErrEmailRequired:      "email",
	service.ErrEmailTaken:         "email",
	service.ErrPasswordIncorrect:  "old_password",
	service.ErrCodeIncorrect:      "code",
	service.ErrInvalidCredentials: "__all__",
}

func asFieldError(err error) (map[string]string, bool) {
	for e, field := range serviceFieldErrors {
		if errors.Is(err, e) {
			return map[string]string{field: e.Error()}, true
		}
	}
	return nil, false
}

func bindForm(c *gin.Context, form any) map[string]string {
	if err := c.ShouldBind(form); err != nil {
		return formErrors(err)
	}
	return nil
}

// parseGroup 空值表示不选分组
func parseGroup(raw string) (*uint64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, false
	}
	return &id, true
}

// safeNext 只允许站内路径, 其余一律回到首页
func safeNext(next string) string {
	if next == "" || next[0] != '/' || strings.ContainsRune(next, '\\') {
		return "/"
	}
	for _, r := range next {
		// 浏览器会丢弃 URL 中的制表符和换行
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return "/"
		}
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return next
}
