// Command virtmem runs a program on a demand-paged virtual memory and reports
// the disk reads, disk writes and page faults it caused.
package main

import "github.com/elliott-beach/virtmem/virtmem/cmd"

func main() {
	cmd.Execute()
}
