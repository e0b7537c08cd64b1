// Package directive recognises `!docdantic: <path>` lines and decodes the
// indented configuration block that may follow them:
//
//	!docdantic: app.User
//	  {"exclude": {"User": ["password"]}}
//
// The block may also be written as YAML:
//
//	!docdantic: app.User
//	  exclude:
//	    Address: [geo]
package directive
