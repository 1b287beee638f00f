// Package site serves the form examples over HTTP.
//
// The index page renders every example from the visitor's own form
// instances. Browsers are identified by a signed cookie; each visitor gets
// an independent set of forms kept in a bounded LRU, and evicting a visitor
// cancels its in-flight checks.
//
// Interactions are DataStar requests answered with server-sent patches:
//
//	POST   /examples/{example}/fields/{field}        change a value
//	POST   /examples/{example}/fields/{field}/touch  mark a field as touched
//	POST   /examples/{example}/submit                validate and submit
//	POST   /examples/{example}/reset                 restore defaults
//	DELETE /examples/{example}/snapshot              clear the submitted data
//	GET    /examples/{example}/state                 form state as JSON
//	GET    /examples/{example}/submissions           recent submissions as JSON
//
// A field change whose validation needs an async check keeps the stream
// open, sending the "checking" status first and the result once the check
// resolves. Submit and reset also accept plain form posts and redirect back
// to the example.
package site
