// Package sample contains the deployment sample function. Every
// invocation returns the same HTML page and the page names the build it
// came from, so fetching it is enough to confirm which version a
// deployment is running.
package sample
