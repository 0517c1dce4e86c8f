// Package gemini implements [vera.Streamer] on top of the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. The model is instructed with
// [vera.SystemPrompt] so its output segments like the answer endpoint's.
package gemini

const defaultModel = "gemini-2.5-flash"

const stepText = "Consulting model"
