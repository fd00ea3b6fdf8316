package story

import "fmt"

// SystemDirective передаётся первым сообщением в каждом запросе и в историю не попадает.
const SystemDirective = "You are a storyteller. You speak only English!"

const instructionTemplate = "Please generate a story. Story type is %s. Reader age: %s. " +
	"And writing style should be %s. The story idea is: %s. " +
	"Move instantly to the story part, skip any unnecessary introduction parts. " +
	"Please return the result in the following JSON format: { \"title\": \"<title>\", \"story\": \"<story>\" } " +
	"where 'title' is the created title for the story. Make this story long, at least 2000 characters, but completed."

// BuildInstruction подставляет поля запроса в фиксированный шаблон.
func BuildInstruction(req Request) string {
	return fmt.Sprintf(instructionTemplate,
		render(req.StoryType),
		render(req.ReaderAge),
		render(req.WritingStyle),
		render(req.CustomInput),
	)
}
