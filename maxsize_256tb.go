//go:build amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x || wasm

package dmmap

// maxMapSize is the largest file Open will attempt to map.
const maxMapSize = 0xFFFFFFFFFFFF // 256TB
