// Package services contains the core application services.
//
// Services implement the driving ports and depend only on domain types
// and driven ports. They hold the orchestration logic: which sources to
// scan, in what order, and how individual failures are contained so the
// run always makes forward progress.
package services
