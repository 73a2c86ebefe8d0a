package service

import (
	"errors"
	"net/http"
)

var (
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrGroupNotFound      = errors.New("группа не найдена")
	ErrPostNotFound       = errors.New("пост не найден")
	ErrNotAuthor          = errors.New("редактировать пост может только автор")
	ErrEmptyText          = errors.New("текст поста не может быть пустым")
	ErrEmptyComment       = errors.New("комментарий не может быть пустым")
	ErrInvalidGroup       = errors.New("выберите корректную группу")
	ErrInvalidImage       = errors.New("загрузите правильное изображение")
	ErrImageTooLarge      = errors.New("изображение слишком большое")
	ErrUsernameTaken      = errors.New("пользователь с таким именем уже существует")
	ErrInvalidUsername    = errors.New("имя пользователя может содержать только буквы, цифры и символы @/./+/-/_")
	ErrEmailRequired      = errors.New("укажите адрес электронной почты")
	ErrEmailTaken         = errors.New("пользователь с таким адресом электронной почты уже существует")
	ErrInvalidCredentials = errors.New("введите правильные имя пользователя и пароль")
	ErrPasswordIncorrect  = errors.New("старый пароль введён неверно")
	ErrCodeIncorrect      = errors.New("неверный или просроченный код")
	ErrGroupSlugTaken     = errors.New("группа с таким slug уже существует")
	ErrUnauthorized       = errors.New("требуется вход")
	ErrSessionReplaced    = errors.New("сессия завершена")
	UnExpectedError       = errors.New("ошибка сервера, попробуйте позже")
)

var ErrorMap = map[error]int{
	ErrUserNotFound:       http.StatusNotFound,
	ErrGroupNotFound:      http.StatusNotFound,
	ErrPostNotFound:       http.StatusNotFound,
	ErrNotAuthor:          http.StatusForbidden,
	ErrEmptyText:          http.StatusBadRequest,
	ErrEmptyComment:       http.StatusBadRequest,
	ErrInvalidGroup:       http.StatusBadRequest,
	ErrInvalidImage:       http.StatusBadRequest,
	ErrImageTooLarge:      http.StatusBadRequest,
	ErrUsernameTaken:      http.StatusBadRequest,
	ErrInvalidUsername:    http.StatusBadRequest,
	ErrEmailRequired:      http.StatusBadRequest,
	ErrEmailTaken:         http.StatusBadRequest,
	ErrInvalidCredentials: http.StatusBadRequest,
	ErrPasswordIncorrect:  http.StatusBadRequest,
	ErrCodeIncorrect:      http.StatusBadRequest,
	ErrGroupSlugTaken:     http.StatusBadRequest,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrSessionReplaced:    http.StatusUnauthorized,
	UnExpectedError:       http.StatusInternalServerError,
}

// StatusOf 已知错误对应的 http 状态码, 其余按 500 处理
func StatusOf(err error) int {
	for e, code := range ErrorMap {
		if errors.Is(err, e) {
			return code
		}
	}
	return http.StatusInternalServerError
}
