// Package events defines the event types and emitter used to decouple
// services from background task creation. Services publish TaskRequestEvents
// describing work to be done (sending a verification email, an OTP text, a
// booking confirmation) without importing the task machinery that performs it.
package events
