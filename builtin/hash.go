package builtin

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/sophiajt/nu-app/engine"
)

type Hash struct{}

func (Hash) Name() string  { return "hash" }
func (Hash) Usage() string { return "Hash the input text." }
func (Hash) Signature() engine.Signature {
	return engine.Signature{Name: "hash", Category: "hash"}
}
func (Hash) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	return nil, subcommandError(state, call, "hash")
}

func hashInput(call *engine.Call, input engine.PipelineData, f func([]byte) string) (engine.PipelineData, error) {
	return mapText(call, input, func(s string) engine.Value {
		return engine.StringValue(f([]byte(s)), call.Head)
	})
}

type HashMd5 struct{}

func (HashMd5) Name() string  { return "hash md5" }
func (HashMd5) Usage() string { return "Hash the input text with MD5." }
func (HashMd5) Signature() engine.Signature {
	return engine.Signature{Name: "hash md5", Category: "hash"}
}
func (HashMd5) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	return hashInput(call, input, func(b []byte) string {
		sum := md5.Sum(b)
		return hex.EncodeToString(sum[:])
	})
}

type HashSha256 struct{}

func (HashSha256) Name() string  { return "hash sha256" }
func (HashSha256) Usage() string { return "Hash the input text with SHA-256." }
func (HashSha256) Signature() engine.Signature {
	return engine.Signature{Name: "hash sha256", Category: "hash"}
}
func (HashSha256) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	return hashInput(call, input, func(b []byte) string {
		sum := sha256.Sum256(b)
		return hex.EncodeToString(sum[:])
	})
}

type HashBlake3 struct{}

func (HashBlake3) Name() string  { return "hash blake3" }
func (HashBlake3) Usage() string { return "Hash the input text with BLAKE3." }
func (HashBlake3) Signature() engine.Signature {
	return engine.Signature{Name: "hash blake3", Category: "hash"}
}
func (HashBlake3) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	return hashInput(call, input, func(b []byte) string {
		sum := blake3.Sum256(b)
		return hex.EncodeToString(sum[:])
	})
}
