package user

import "github.com/gin-gonic/gin"

// IdentityKey 是Gin上下文中存放当前用户身份的键名
const IdentityKey = "identity"

// Identity 描述身份服务签发的会话中携带的用户信息。
type Identity struct {
	ID        string
	FirstName string
	LastName  string
	ImageURL  string
	Email     string
}

// FromContext 从Gin上下文中取出当前用户身份。
// 第二个返回值为false表示请求没有携带有效会话。
func FromContext(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
