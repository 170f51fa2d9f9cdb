package db

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readInitMigration(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../migrations/0001_init.sql")
	require.NoError(t, err)
	return string(data)
}

// tableDef вырезает определение таблицы из SQL-миграции.
func tableDef(t *testing.T, sql, table string) string {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(sql, marker)
	require.NotEqual(t, -1, start, "таблица %s не найдена в миграции", table)
	end := strings.Index(sql[start:], ");")
	require.NotEqual(t, -1, end)
	return sql[start : start+end]
}

func columnLine(t *testing.T, def, column string) string {
	t.Helper()
	for _, line := range strings.Split(def, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), column+" ") {
			return line
		}
	}
	t.Fatalf("колонка %s не найдена", column)
	return ""
}

// Удаление комментария не должно уносить за собой жалобу: жалоба остаётся
// в решённом статусе с обнулённой ссылкой, а запись журнала модерации
// сохраняет идентификатор удалённого комментария.
func TestInitMigration_ReportSurvivesCommentDeletion(t *testing.T) {
	sql := readInitMigration(t)
	reports := tableDef(t, sql, "reports")

	line := columnLine(t, reports, "target_comment_id")
	assert.Contains(t, line, "REFERENCES comments(id) ON DELETE SET NULL")
	assert.NotContains(t, line, "ON DELETE CASCADE")

	// Ограничение допускает обнулённую ссылку у уже решённой жалобы.
	check := regexp.MustCompile(`(?s)CHECK \(\s*\(target_post_id IS NOT NULL\)::int.*<= 1\s*\)`)
	assert.True(t, check.MatchString(reports), "ограничение на число объектов должно допускать ноль")
}

func TestInitMigration_ModerationLogKeepsDeletedTargets(t *testing.T) {
	sql := readInitMigration(t)
	actions := tableDef(t, sql, "moderation_actions")

	for _, column := range []string{"target_user_id", "target_space_id", "target_post_id", "target_comment_id"} {
		line := columnLine(t, actions, column)
		assert.NotContains(t, line, "REFERENCES", "журнал не должен терять %s при удалении объекта", column)
	}

	// Ссылка на саму жалобу остаётся внешним ключом: жалобы не удаляются
	// при модерационном удалении контента.
	assert.Contains(t, columnLine(t, actions, "report_id"), "REFERENCES reports(id) ON DELETE SET NULL")
}
