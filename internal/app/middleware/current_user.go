package middleware

import (
	"github.com/gin-gonic/gin"
)

// CurrentUser — администратор, от имени которого работает админка.
// Идентичность передаётся в обработчики через контекст запроса,
// а не через глобальный синглтон авторизации.
type CurrentUser struct {
	ID       uint
	Login    string
	FullName string
	IsAdmin  bool
}

// defaultAdmin возвращает фиксированного администратора (ID=1),
// пока HTML-часть админки живёт без собственного логина
func defaultAdmin() *CurrentUser {
	return &CurrentUser{
		ID:       1,
		Login:    "admin1",
		FullName: "Администратор",
		IsAdmin:  true,
	}
}

// CurrentUserMiddleware добавляет текущего администратора в контекст
func CurrentUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("current_user", defaultAdmin())
		c.Next()
	}
}

// GetUserFromContext извлекает администратора из контекста
func GetUserFromContext(c *gin.Context) *CurrentUser {
	if user, exists := c.Get("current_user"); exists {
		if u, ok := user.(*CurrentUser); ok {
			return u
		}
	}
	return defaultAdmin() // Fallback
}
