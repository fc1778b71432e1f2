// Package model describes the supported thermostat models and their
// capabilities: which heating modes each model offers, the floor sensor
// presets the vendor app writes, and the firmware revision gates for
// optional features.
package model
