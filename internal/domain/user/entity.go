package user

// User 店员账号实体(聚合根)
// 设计说明:
// 1. 密码只存bcrypt哈希,不提供取回明文的方法
// 2. 领域实体不带GORM tag,表映射在infrastructure层处理
type User struct {
	Username string // 登录名,唯一
	Password string // bcrypt哈希值
}

// NewUser 创建新账号(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, hashedPassword string) *User {
	return &User{
		Username: username,
		Password: hashedPassword,
	}
}
