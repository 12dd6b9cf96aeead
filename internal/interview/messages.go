package interview

import "fmt"

const greetingMessage = `Hello, and welcome to TalentScout!

I'm the hiring assistant for our initial screening. I'll collect a few details
about you and then ask some technical questions based on your tech stack.
This usually takes 5-10 minutes.

To get started, could you tell me your full name?`

const techStackPrompt = `Almost done with the basics. Please list your tech stack - the languages,
frameworks, databases and tools you're proficient in, separated by commas.`

const techStackRePrompt = `I couldn't pick out any technologies from that. Please list them separated
by commas, e.g. Python, React, PostgreSQL.`

const confirmPrompt = `Does this summary look right? Reply "yes" to finish, or "no" to declare your
tech stack again.`

const completeMessage = `Thank you for completing the screening!

Our recruitment team will review your responses and get back to you within
2-3 business days. Have a great day!`

const exitMessage = `Thank you for your time and interest in TalentScout. Your information has
been recorded. Have a great day and good luck with your job search!`

const abortMessage = `I'm having trouble understanding your replies, so I'll stop the screening
here. Please reach out to our recruitment team to continue another time.`

var fieldPrompts = map[ProfileField]string{
	FieldName:       "Could you tell me your full name?",
	FieldContact:    "How can we reach you? Please share an email address or phone number.",
	FieldExperience: "How many years of professional experience do you have?",
	FieldRole:       "What position are you interested in applying for?",
	FieldLocation:   "What is your current location (city, country)?",
}

func promptFor(field ProfileField) string {
	if prompt, ok := fieldPrompts[field]; ok {
		return prompt
	}
	return "Could you tell me a bit more?"
}

func questionMessage(number, total int, prompt string) string {
	return fmt.Sprintf("Question %d of %d:\n\n%s", number, total, prompt)
}

func summaryMessage(s *State) string {
	return fmt.Sprintf("That was the last question, thank you!\n\nHere is what I recorded:\n\n%s\n\n%s", s.Summary(), confirmPrompt)
}
