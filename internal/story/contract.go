package story

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStory ответ модели не соответствует формату {"title", "story"}.
var ErrInvalidStory = errors.New("story reply does not match contract")

// Story ожидаемая форма ответа модели.
type Story struct {
	Title string `json:"title"`
	Story string `json:"story"`
}

// ContractError перечисляет все найденные нарушения формата.
type ContractError struct {
	Problems []string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidStory, strings.Join(e.Problems, "; "))
}

func (e *ContractError) Is(target error) bool {
	return target == ErrInvalidStory
}

// ParseStory разбирает ответ модели. Модели любят оборачивать JSON в code fence
// или добавлять фразу перед ним, поэтому перебираются все {...} в тексте
// и берётся первый, который проходит проверку.
func ParseStory(reply string) (Story, error) {
	var firstErr *ContractError
	for from := 0; ; {
		start, raw := nextObject(reply, from)
		if start < 0 {
			break
		}
		from = start + 1
		if raw == "" {
			continue
		}

		s, err := decodeStory(raw)
		if err == nil {
			return s, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr == nil {
		return Story{}, &ContractError{Problems: []string{"no JSON object in reply"}}
	}
	return Story{}, firstErr
}

func decodeStory(raw string) (Story, *ContractError) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()

	var s Story
	if err := dec.Decode(&s); err != nil {
		return Story{}, &ContractError{Problems: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}

	var problems []string
	if strings.TrimSpace(s.Title) == "" {
		problems = append(problems, "title is empty")
	}
	if strings.TrimSpace(s.Story) == "" {
		problems = append(problems, "story is empty")
	}
	if len(problems) > 0 {
		return Story{}, &ContractError{Problems: problems}
	}
	return s, nil
}

// nextObject ищет первую '{' начиная с from и возвращает её позицию и
// сбалансированный {...} с учётом строк и экранирования. Если объект не
// закрывается, raw пустой. start == -1, когда скобок больше нет.
func nextObject(text string, from int) (start int, raw string) {
	if from >= len(text) {
		return -1, ""
	}
	idx := strings.IndexByte(text[from:], '{')
	if idx < 0 {
		return -1, ""
	}
	start = from + idx

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return start, text[start : i+1]
			}
		}
	}
	return start, ""
}
