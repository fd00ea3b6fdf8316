package story

import "net/url"

// Поля формы POST /generate_story.
const (
	FieldCustomInput  = "customInput"
	FieldStoryType    = "storyType"
	FieldReaderAge    = "readerAge"
	FieldWritingStyle = "writingStyle"
)

// missingValue подставляется в промпт вместо поля, которого не было в запросе.
const missingValue = "None"

// Request параметры истории. nil означает, что поле не передано вовсе,
// указатель на пустую строку означает, что поле передано пустым.
type Request struct {
	CustomInput  *string
	StoryType    *string
	ReaderAge    *string
	WritingStyle *string
}

// ParseForm собирает Request из значений формы. Валидации нет: любые строки допустимы.
func ParseForm(form url.Values) Request {
	return Request{
		CustomInput:  formValue(form, FieldCustomInput),
		StoryType:    formValue(form, FieldStoryType),
		ReaderAge:    formValue(form, FieldReaderAge),
		WritingStyle: formValue(form, FieldWritingStyle),
	}
}

func formValue(form url.Values, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// render возвращает значение для подстановки в шаблон.
func render(field *string) string {
	if field == nil {
		return missingValue
	}
	return *field
}

// String удобный конструктор для тестов и CLI.
func String(s string) *string {
	return &s
}
