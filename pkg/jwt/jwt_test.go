package jwt

import (
	"testing"
	"time"

	"qr-attendance/backend/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 60 * time.Minute,
		QRTokenTTL:     10 * time.Minute,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(42, "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("期望 UserID=42，实际=%d", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.Purpose != "" {
		t.Errorf("登录 Token 不应携带 purpose，实际=%s", claims.Purpose)
	}
	if claims.Issuer != "qr-attendance" {
		t.Errorf("期望 Issuer=qr-attendance，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	// 检查过期时间约为 60 分钟
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Errorf("AccessToken TTL 期望约60m，实际=%v", ttl)
	}
}

func TestGenerateQRToken(t *testing.T) {
	m := newTestManager()

	token, sessionID, err := m.GenerateQRToken()
	if err != nil {
		t.Fatalf("GenerateQRToken 失败: %v", err)
	}
	if sessionID == "" {
		t.Fatal("session_id 不应为空")
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.Purpose != QRPurposeAttendance {
		t.Errorf("期望 Purpose=%s，实际=%s", QRPurposeAttendance, claims.Purpose)
	}
	if claims.SessionID != sessionID {
		t.Errorf("期望 SessionID=%s，实际=%s", sessionID, claims.SessionID)
	}
	if claims.UserID != 0 {
		t.Errorf("QR Token 不应携带 user_id，实际=%d", claims.UserID)
	}

	// 检查过期时间约为 10 分钟
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 9*time.Minute || ttl > 11*time.Minute {
		t.Errorf("QR Token TTL 期望约10m，实际=%v", ttl)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if err == nil {
		t.Error("期望解析无效 token 返回错误")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "different-secret-key",
		AccessTokenTTL: 60 * time.Minute,
		QRTokenTTL:     10 * time.Minute,
	})

	token, _ := m1.GenerateAccessToken(1, "user")
	_, err := m2.ParseToken(token)
	if err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	// 创建一个 TTL 极短的 manager 来测试过期
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: 1 * time.Millisecond,
		QRTokenTTL:     1 * time.Millisecond,
	})

	token, _ := m.GenerateAccessToken(1, "user")
	time.Sleep(10 * time.Millisecond)

	_, err := m.ParseToken(token)
	if err == nil {
		t.Error("过期 token 不应通过验证")
	}
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
