package gitz

// Canonical documentation comments of each configuration version. Upgrade
// steps swap them for their newer counterpart, but only where the user left
// them untouched.

const headerDoc = "# git-z configuration file.\n\n# The configuration format version.\n"

// Version 0.1.
const (
	v01TypesDoc = "\n# The available types of commits.\n#\n" +
		"# This is a list of types (1 word) and their description, separated by one or\n" +
		"# more spaces.\n"
	v01ScopesDoc         = "\n#The list of valid scopes.\n"
	v01TicketPrefixesDoc = "\n# The list of valid ticket prefixes.\n"
	v01TemplateDoc       = "\n# The commit message template, written with the pongo2 [1] templating engine.\n" +
		"# [1] https://github.com/flosch/pongo2\n"
)

// Version 0.2-dev.0.
const (
	dev0TypesDoc        = "\n# The available types of commits.\n"
	dev0ScopesDoc       = "\n# The accepted scopes.\n"
	dev0ScopesAcceptDoc = "# What kind of scope to accept.\n#\n" +
		"# Only \"list\" is supported, with a `list` key containing the valid scopes.\n"
	dev0TicketDoc          = "\n# The ticket / issue reference configuration.\n"
	dev0TicketPrefixesDoc  = "# The list of valid ticket prefixes.\n"
	dev0TemplatesDoc       = "\n# Templates written with the pongo2 [1] templating engine.\n#\n# [1] https://github.com/flosch/pongo2\n"
	dev0TemplatesCommitDoc = "# The commit message template.\n"

	dev0ScopesCommented = dev0ScopesDoc + "#\n# [scopes]\n# accept = \"list\"\n# list = [\"api\", \"cli\"]\n"
	dev0TicketCommented = dev0TicketDoc + "#\n# [ticket]\n# prefixes = [\"#\"]\n"
)

// Versions 0.2-dev.1 to 0.2-dev.3 only changed some of the comments above.
const (
	dev1TicketCommented = dev0TicketDoc + "#\n# [ticket]\n# required = false\n# prefixes = [\"#\"]\n"
	dev3ScopesCommented = dev0ScopesDoc + "#\n# [scopes]\n# accept = \"any\"\n"
)

// Version 0.2.
const (
	typesDoc = "\n# The available types of commits and their description.\n#\n" +
		"# Types are shown in the dialog in the order they appear in this configuration.\n"
	scopesDoc = "\n# The accepted scopes.\n#\n" +
		"# This table is optional: if omitted, no scope will be asked for.\n"
	scopesAcceptDoc = "# What kind of scope to accept.\n#\n" +
		"# Can be one of: \"any\", \"list\". If it is \"list\", a `list` key containing a list\n" +
		"# of valid scopes is required.\n"
	ticketDoc = "\n# The ticket / issue reference configuration.\n#\n" +
		"# This table is optional: if omitted, no ticket will be asked for.\n"
	ticketRequiredDoc = "# Set to true to require a ticket number.\n" +
		"# Set to false to ask for a ticket without requiring it.\n"
	ticketPrefixesDoc = "# The list of valid ticket prefixes.\n#\n" +
		"# Can be a `#` for GitHub / GitLab issues, or a Jira key for instance.\n"
	templatesDoc = "\n# Templates written with the pongo2 [1] templating engine.\n#\n" +
		"# The syntax is close to Jinja2. Each template is documented below, with its\n" +
		"# list of available variables. Variables marked as optional can be empty, hence\n" +
		"# should be checked for presence in the template.\n#\n" +
		"# [1] https://github.com/flosch/pongo2\n"
	templatesCommitDoc = "# The commit template.\n#\n# Available variables:\n#\n" +
		"#   - type: the type of commit\n" +
		"#   - scope (optional): the scope of the commit\n" +
		"#   - description: the short description\n" +
		"#   - breaking_change (optional): the description of the breaking change\n" +
		"#   - ticket (optional): the ticket reference\n"

	scopesCommented = scopesDoc + "#\n# [scopes]\n# accept = \"any\"\n"
	ticketCommented = ticketDoc + "#\n# [ticket]\n# required = false\n# prefixes = [\"#\"]\n"
)
