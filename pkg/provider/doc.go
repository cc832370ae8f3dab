// Package provider implements content providers: named sources that each
// contribute one value to the `app` namespace of every rendered page.
//
// Providers are built from configuration specs through a Factories table
// keyed by type identifier. The Registry keeps one deferred producer per
// provider key and re-invokes all of them on each render, so values are never
// stale snapshots.
package provider
