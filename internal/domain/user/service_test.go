package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// fakeUserRepo 内存用户仓储(测试用)
type fakeUserRepo struct {
	users  map[string]*User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *User) error {
	if _, ok := f.users[u.Username]; ok {
		return ErrUsernameDuplicate
	}
	u.ID = f.nextID
	f.nextID++
	f.users[u.Username] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

// TestService_Register 测试读者注册
func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("正常注册", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		u, err := svc.Register(ctx, "reader_01", "passw0rd123", "张三", "zhang@example.com", "13800000000")
		require.NoError(t, err)

		assert.NotZero(t, u.ID)
		assert.Equal(t, RolePatron, u.Role, "注册用户默认为读者角色")
		assert.NotEqual(t, "passw0rd123", u.Password, "密码不应明文存储")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("passw0rd123")))
	})

	t.Run("用户名格式不正确", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		for _, username := range []string{"ab", "含中文名", "with space", "a!@#"} {
			_, err := svc.Register(ctx, username, "passw0rd123", "张三", "", "")
			assert.Error(t, err, "用户名%q应被拒绝", username)
		}
	})

	t.Run("弱密码被拒绝", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		for _, password := range []string{"short1", "onlyletters", "12345678", "thispasswordiswaytoolong1"} {
			_, err := svc.Register(ctx, "reader_02", password, "张三", "", "")
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "密码%q应被拒绝", password)
		}
	})

	t.Run("用户名重复", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())
		_, err := svc.Register(ctx, "reader_03", "passw0rd123", "张三", "", "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "reader_03", "passw0rd456", "李四", "", "")
		assert.ErrorIs(t, err, ErrUsernameDuplicate)
	})
}

// TestService_Login 测试用户登录
func TestService_Login(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo)

	_, err := svc.Register(ctx, "reader_10", "passw0rd123", "王五", "", "")
	require.NoError(t, err)

	t.Run("正确密码登录成功", func(t *testing.T) {
		u, err := svc.Login(ctx, "reader_10", "passw0rd123")
		require.NoError(t, err)
		assert.Equal(t, "reader_10", u.Username)
	})

	t.Run("错误密码登录失败", func(t *testing.T) {
		_, err := svc.Login(ctx, "reader_10", "wrongpass1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在与密码错误返回同一错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "no_such_user", "passw0rd123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword, "不暴露用户是否存在")
	})

	t.Run("空白用户名或密码登录失败", func(t *testing.T) {
		for _, pair := range [][2]string{{"", "passw0rd123"}, {"reader_10", ""}, {"   ", "   "}} {
			_, err := svc.Login(ctx, pair[0], pair[1])
			assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
		}
	})
}
