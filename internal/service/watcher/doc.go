// Package watcher rebuilds a package whenever the analysed tree changes.
//
// Every rebuild is a complete pack: the tree is scanned again and the package
// is replaced. Changes are debounced, and rebuilds run one at a time on the
// watch loop. A failing rebuild is logged and the watch goes on, so a
// descriptor caught mid-save does not end the session.
package watcher
