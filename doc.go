/*
Package singlecore restricts the current (game) process to a single logical
CPU core, once, at startup. A number of older games misbehave or stutter when
the OS schedules them across multiple cores, so this plugin pins them to the
numerically-lowest CPU core the system makes available.

The user always wins, though: when the host's command line already carries the
“-CPUCount:...” switch, the host has applied the user's explicit core choice
before this plugin ever runs, and [OnStart] deliberately does nothing beyond
noting that fact in the log.

[OnStart] is the host lifecycle callback. It takes the host's command line and
the plugin logger as explicit collaborators, reports every outcome to the
log, and absorbs all OS failures: a process that could not be pinned simply
keeps running with the affinity it already had.
*/
package singlecore
