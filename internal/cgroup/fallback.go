package cgroup

// fallbackPaths is a structurally plausible systemd-style hierarchy used
// when the real one is unreadable. Order matters: stats are derived from
// each path's index, so the synthetic snapshot is fully deterministic.
var fallbackPaths = []Path{
	"/",
	"/init.scope",
	"/machine.slice",
	"/machine.slice/docker-123456.scope",
	"/system.slice",
	"/system.slice/nginx.service",
	"/system.slice/ssh.service",
	"/system.slice/systemd-logind.service",
	"/user.slice",
	"/user.slice/user-1000.slice",
	"/user.slice/user-1000.slice/session-2.scope",
	"/user.slice/user-1000.slice/user@1000.service",
	"/user.slice/user-1000.slice/user@1000.service/app.slice",
	"/user.slice/user-1000.slice/user@1000.service/app.slice/firefox.service",
}

// fallbackProcs gives the synthetic tree a few recognizable processes.
var fallbackProcs = []ProcessInfo{
	{PID: 1, Command: "/sbin/init", Group: "/init.scope"},
	{PID: 100, Command: "/usr/lib/systemd/systemd-logind", Group: "/system.slice/systemd-logind.service"},
	{PID: 200, Command: "sshd: /usr/sbin/sshd -D", Group: "/system.slice/ssh.service"},
	{PID: 350, Command: "nginx: master process", Group: "/system.slice/nginx.service"},
	{PID: 1000, Command: "-bash", Group: "/user.slice/user-1000.slice/session-2.scope"},
	{PID: 2000, Command: "/usr/lib/firefox/firefox", Group: "/user.slice/user-1000.slice/user@1000.service/app.slice/firefox.service"},
}

// FallbackSnapshot builds the deterministic synthetic snapshot published
// when the hierarchy root cannot be scanned (or mock mode is forced).
// This is a designed operating mode, not an error path: the snapshot is
// flagged so the UI can show a fallback badge, and the rest of the
// pipeline treats it like any other snapshot.
func FallbackSnapshot() *Snapshot {
	const mib = 1024 * 1024

	stats := make(map[Path]ResourceStats, len(fallbackPaths))
	for i, p := range fallbackPaths {
		n := uint64(i)
		memMax := uint64(100 * mib)
		pidMax := uint64(512)

		pids := n + 1
		if p.IsRoot() {
			pids = 100
		}

		stats[p] = ResourceStats{
			Memory: MemoryStats{
				Current: (10 + n*5) * mib,
				Peak:    (12 + n*5) * mib,
				Max:     &memMax,
			},
			CPU: CPUStats{
				UsageUsec:  1_000_000 * (n + 1),
				UserUsec:   500_000 * (n + 1),
				SystemUsec: 200_000 * (n + 1),
			},
			IO: IOStats{
				Rbytes: 1024 * (100 + n*50),
				Wbytes: 1024 * (50 + n*25),
				Rios:   10 + n*2,
				Wios:   5 + n,
			},
			Pids: PidStats{Current: pids, Max: &pidMax},
		}
	}

	procs := make([]ProcessInfo, len(fallbackProcs))
	copy(procs, fallbackProcs)

	return NewSnapshot(stats, procs, true)
}
