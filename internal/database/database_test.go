package database

import "testing"

func TestGormConfig_TranslatesDriverErrors(t *testing.T) {
	// Conflict mapping depends on the driver rewriting unique-index
	// violations into gorm.ErrDuplicatedKey, which gorm only does with
	// TranslateError set.
	if !gormConfig().TranslateError {
		t.Error("gormConfig() must enable TranslateError")
	}
}
