package jwt

import (
	"testing"
	"time"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 2*time.Hour, 168*time.Hour)
}

// TestGenerateAndParseToken 测试Token生成与解析
func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "reader_01", "patron")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token对不应为空")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("ExpiresIn错误: expected=%d, got=%d", int64((2*time.Hour).Seconds()), pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Access Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID错误: expected=42, got=%d", claims.UserID)
	}
	if claims.Username != "reader_01" {
		t.Errorf("Username错误: expected=reader_01, got=%s", claims.Username)
	}
	if claims.Role != "patron" {
		t.Errorf("Role错误: expected=patron, got=%s", claims.Role)
	}
}

// TestParseToken_Invalid 测试非法Token解析
func TestParseToken_Invalid(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("not-a-token"); err != apperrors.ErrInvalidToken {
		t.Errorf("乱码Token应返回ErrInvalidToken, got=%v", err)
	}

	// 不同密钥签发的Token
	other := NewManager("other-secret", time.Hour, time.Hour)
	pair, err := other.GenerateToken(1, "u", "patron")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if _, err := m.ParseToken(pair.AccessToken); err != apperrors.ErrInvalidToken {
		t.Errorf("错误签名应返回ErrInvalidToken, got=%v", err)
	}
}

// TestParseToken_Expired 测试过期Token
func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour)

	pair, err := m.GenerateToken(1, "u", "patron")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if _, err := m.ParseToken(pair.AccessToken); err != apperrors.ErrTokenExpired {
		t.Errorf("过期Token应返回ErrTokenExpired, got=%v", err)
	}
}

// TestRefreshAccessToken 测试刷新Access Token
func TestRefreshAccessToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "reader_01", "patron")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	newToken, err := m.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("刷新Token失败: %v", err)
	}

	claims, err := m.ParseToken(newToken)
	if err != nil {
		t.Fatalf("解析新Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID错误: expected=42, got=%d", claims.UserID)
	}

	// 非法Refresh Token不能刷新
	if _, err := m.RefreshAccessToken("bad-token"); err == nil {
		t.Error("非法Refresh Token应刷新失败")
	}
}
