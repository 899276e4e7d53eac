// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Command sentrywallctl is the control-plane CLI that mutates the
// whitelist table a running sentrywalld instance consults (spec.md §6:
// "tool {add|del} <ip>", exit 0 on success, exit 1 otherwise).
package main

import (
	"fmt"
	"net"
	"os"

	"sentrywall.dev/sentrywall/internal/tables"
	"sentrywall.dev/sentrywall/internal/types"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: sentrywallctl {add|del} <ip>")
		os.Exit(1)
	}

	action := os.Args[1]
	ip := net.ParseIP(os.Args[2])
	if ip == nil {
		fmt.Fprintf(os.Stderr, "sentrywallctl: not an IP address: %s\n", os.Args[2])
		os.Exit(1)
	}

	set, backend, err := tables.Open(tables.DefaultSizes())
	if err != nil {
		fmt.Fprintf(os.Stderr, "sentrywallctl: open tables: %v\n", err)
		os.Exit(1)
	}
	if backend != tables.BackendBPFMap {
		fmt.Fprintf(os.Stderr, "sentrywallctl: pinned tables unavailable (backend=%s)\n", backend)
		os.Exit(1)
	}

	key := whitelistKey(ip)

	switch action {
	case "add":
		err = set.Whitelist.Set(key, []byte{1})
	case "del":
		err = set.Whitelist.Delete(key)
	default:
		fmt.Fprintf(os.Stderr, "sentrywallctl: unknown action %q (want add or del)\n", action)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "sentrywallctl: %s %s: %v\n", action, ip, err)
		os.Exit(1)
	}

	fmt.Printf("sentrywallctl: %s %s (backend=%s)\n", action, ip, backend)
}

// whitelistKey builds the {family, pad[3], addr[16]} key spec.md §6
// defines for the whitelist table, matching internal/pipeline's encoding.
func whitelistKey(ip net.IP) []byte {
	b := make([]byte, 20)
	if v4 := ip.To4(); v4 != nil {
		b[0] = byte(types.FamilyV4)
		copy(b[4:8], v4)
		return b
	}
	b[0] = byte(types.FamilyV6)
	copy(b[4:20], ip.To16())
	return b
}
