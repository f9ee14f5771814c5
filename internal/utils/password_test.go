package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("longenough1")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	if hash == "longenough1" {
		t.Fatal("хеш совпадает с паролем")
	}

	if !CheckPasswordHash("longenough1", hash) {
		t.Fatal("верный пароль не прошёл проверку")
	}
	if CheckPasswordHash("longenough2", hash) {
		t.Fatal("неверный пароль прошёл проверку")
	}
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	// Битый хеш в базе не должен ронять проверку — просто false
	if CheckPasswordHash("secret", "это не bcrypt") {
		t.Fatal("проверка по битому хешу вернула true")
	}
	if CheckPasswordHash("secret", "") {
		t.Fatal("проверка по пустому хешу вернула true")
	}
}
