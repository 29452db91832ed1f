//go:build 386 || arm || mips || mipsle || ppc

package dmmap

// maxMapSize is the largest file Open will attempt to map.
const maxMapSize = 0x7FFFFFFF // 2GB
