// Package models lists the OpenAI chat models usable for translation.
package models
