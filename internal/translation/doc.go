// Package translation translates subtitle lines and single words through an
// external provider (OpenAI or Gemini). Provider failures are reported as
// *Error; a circuit breaker stops calling a provider that keeps failing.
package translation
