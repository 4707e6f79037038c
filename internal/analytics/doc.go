// Package analytics derives health metrics from a user's health record: BMI,
// a composite wellness score, goal progress, trends and templated insights.
//
// Every function is pure. Inputs are plain values and nothing is cached or
// persisted, so all of it is safe to call from concurrent goroutines.
package analytics
