// Package config assembles the application settings from built-in defaults,
// an optional HCL settings file, a .env file and the process environment.
//
// Precedence, lowest first: defaults, settings file, environment. Command-line
// flags are applied on top by the cli package.
//
// A settings file may contain three optional blocks:
//
//	source {
//	  path           = "${env.HOME}/erp/students.csv"
//	  delimiter      = ","
//	  list_separator = ";"
//	  pair_separator = ":"
//	  skip_header    = true
//	}
//
//	query {
//	  default_threshold = 9
//	}
//
//	log {
//	  level  = lower("INFO")
//	  format = "text"
//	}
//
// Expressions can read the environment through the env object and call the
// lower, upper, trimspace and coalesce functions. Referencing a variable that
// is not set is an error.
package config
