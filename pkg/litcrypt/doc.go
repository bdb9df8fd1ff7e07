/*
Package litcrypt hides string literals from static inspection of a compiled binary.

Literals are XOR screened at build time, and a small decoder embedded in the binary reverses the process the first time the value is needed.
This is NOT encryption, the key is stored right next to the screened data.
It only keeps plain text out of the output of tools like strings.

# How it works:

A build session resolves one key, either from the LITCRYPT_ENCRYPT_KEY environment variable or from 64 secure random bytes.
The key is screened once with a fixed obfuscation constant, and that obfuscated key is both embedded in the binary and used to screen every literal in the session.
Each literal becomes a Call, a ciphertext plus the obfuscated key, which an emitter renders as a call to the runtime decoder.

# Important note:

Every literal in a session must be screened with the same key.
Use a single Session for a build pass and share it between all transformation sites, it resolves its key exactly once and is safe for concurrent use.
Screening literals with keys from different sessions and embedding only one of them will produce garbled text or a decoding failure at run time.

# General guidelines:
  - Setting LITCRYPT_ENCRYPT_KEY gives stable output across builds, which is useful for reproducible builds.
  - An empty LITCRYPT_ENCRYPT_KEY is allowed, but leaves every literal in plain text.
  - Environment literals are resolved at build time. An unset variable yields the EnvPlaceholder text instead of an error.
*/
package litcrypt
