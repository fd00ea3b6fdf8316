package llm

// KnownModels модели Groq, с которыми сервис проверялся.
var KnownModels = []ModelInfo{
	{
		ID:          "llama3-70b-8192",
		Name:        "Llama 3 70B",
		Description: "Основная модель для историй, контекст 8k",
	},
	{
		ID:          "llama3-8b-8192",
		Name:        "Llama 3 8B",
		Description: "Быстрая и дешёвая, истории короче",
	},
	{
		ID:          "llama-3.3-70b-versatile",
		Name:        "Llama 3.3 70B Versatile",
		Description: "Замена llama3-70b с контекстом 128k",
	},
	{
		ID:          "mixtral-8x7b-32768",
		Name:        "Mixtral 8x7B",
		Description: "Длинный контекст 32k",
	},
	{
		ID:          "gemma2-9b-it",
		Name:        "Gemma 2 9B",
		Description: "Компактная модель Google",
	},
}

// ModelInfo описывает информацию о модели.
type ModelInfo struct {
	ID          string // Идентификатор модели для API
	Name        string // Короткое название для отображения
	Description string // Описание модели
}

// GetModelByID возвращает информацию о модели по её ID.
// Если модель не найдена, возвращает nil.
func GetModelByID(modelID string) *ModelInfo {
	for _, m := range KnownModels {
		if m.ID == modelID {
			return &m
		}
	}
	return nil
}

// IsKnownModel проверяет, есть ли modelID в каталоге.
func IsKnownModel(modelID string) bool {
	return GetModelByID(modelID) != nil
}

// GetModelName возвращает короткое название модели по её ID.
// Если модель не найдена, возвращает сам ID.
func GetModelName(modelID string) string {
	if info := GetModelByID(modelID); info != nil {
		return info.Name
	}
	return modelID
}
