// Package cli implements the interactive terminal client: a read-eval-print
// loop over the account, catalog and administration services, a session
// held as a signed token, a background reachability watcher and a listener
// that prints attack_detected notifications as they arrive.
package cli
