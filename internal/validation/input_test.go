package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("user@example.com"); err != nil {
		t.Fatalf("валидный email отклонён: %v", err)
	}
	for _, bad := range []string{"", "plainaddress", "two@@example.com", "@example.com"} {
		if err := ValidateEmail(bad); err == nil {
			t.Fatalf("email %q должен быть отклонён", bad)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Password123"); err != nil {
		t.Fatalf("валидный пароль отклонён: %v", err)
	}
	for _, bad := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		if err := ValidatePassword(bad); err == nil {
			t.Fatalf("пароль %q должен быть отклонён", bad)
		}
	}
}

func TestValidateSlug(t *testing.T) {
	for _, good := range []string{"books", "go-lang", "retro-games-2"} {
		if err := ValidateSlug(good); err != nil {
			t.Fatalf("валидный slug %q отклонён: %v", good, err)
		}
	}
	for _, bad := range []string{"", "ab", "With-Caps", "под-капотом", "double--dash", "-lead", "trail-"} {
		if err := ValidateSlug(bad); err == nil {
			t.Fatalf("slug %q должен быть отклонён", bad)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("demo_user"); err != nil {
		t.Fatalf("валидный username отклонён: %v", err)
	}
	if err := ValidateUsername("ab"); err == nil {
		t.Fatalf("слишком короткий username должен быть отклонён")
	}
}

func TestValidatePostTitle(t *testing.T) {
	if err := ValidatePostTitle("Заголовок поста"); err != nil {
		t.Fatalf("валидный заголовок отклонён: %v", err)
	}
	if err := ValidatePostTitle("ab"); err == nil {
		t.Fatalf("слишком короткий заголовок должен быть отклонён")
	}
}
