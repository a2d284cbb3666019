package service

import "errors"

// Ошибки ядра возвращаются значениями: вызывающий слой ветвится по ним
// через errors.Is и сам решает, во что их превращать (404, 403 и т.д.).
var (
	// ErrNotFound — идентификатор не разрешился ни в одном пространстве имён.
	ErrNotFound = errors.New("memorial not found")

	// ErrUnauthenticated — действие требует известного актора, а его нет.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden — актор известен, но права не хватает.
	ErrForbidden = errors.New("access forbidden")

	// ErrNotOwner — управление грантами доступно только владельцу.
	ErrNotOwner = errors.New("actor is not the memorial owner")

	// ErrDuplicateGrant — пара (memorial, user) уже имеет грант;
	// сначала отзыв, затем новая выдача.
	ErrDuplicateGrant = errors.New("editor grant already exists")

	// ErrInvalidSection — тег раздела вне закрытого набора.
	ErrInvalidSection = errors.New("unknown section tag")

	// ErrInvalidVisibility — значение видимости вне enum.
	ErrInvalidVisibility = errors.New("unknown visibility value")

	// ErrLoginTaken — логин уже занят.
	ErrLoginTaken = errors.New("login already taken")

	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid login or password")
)
