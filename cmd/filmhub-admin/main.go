// Command filmhub-admin runs operator tasks against the catalog store:
// checking configuration, migrating the schema and seeding an administrator.
package main

import "filmhub/cmd/filmhub-admin/command"

func main() {
	command.Execute()
}
