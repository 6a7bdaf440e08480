package bench

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// describeCPU summarises the architecture and the SIMD features that matter
// for dense kernels, e.g. "amd64, 8 threads, avx avx2 fma".
func describeCPU() string {
	var feats []string
	add := func(has bool, name string) {
		if has {
			feats = append(feats, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64":
		add(cpu.X86.HasSSE2, "sse2")
		add(cpu.X86.HasSSE41, "sse4.1")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasFP, "fp")
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
		add(cpu.ARM64.HasSVE2, "sve2")
	}

	s := fmt.Sprintf("%s, %d threads", runtime.GOARCH, runtime.NumCPU())
	if len(feats) > 0 {
		s += ", " + strings.Join(feats, " ")
	}

	return s
}
