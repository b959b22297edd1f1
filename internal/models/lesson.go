package models

// LessonProgress tracks how far a user is through one lesson
type LessonProgress struct {
	CurrentSection int  `json:"currentSection"`
	QuizAnswered   int  `json:"quizAnswered"`
	Completed      bool `json:"completed"`
}

// Theme is the UI colour scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
