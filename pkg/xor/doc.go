/*
Package xor provides the repeating-key XOR used to screen embedded literals.

Note that this is NOT encryption, since it is easily reversible.
This falls squarely under the obfuscation category.
As such, it is NOT recommended for security critical use.
It's useful for keeping plain text out of a compiled binary, so that dumping its printable strings doesn't reveal it.

# How it works:

A key is treated as an infinitely repeating byte sequence.
Byte i of the source is XOR'd with byte i mod len(key) of the key.
When the last byte of the key is used, the first will be used again, operating like a ring buffer.

  - An empty key leaves the source unchanged. This does NOT obfuscate anything.
  - A single byte key is broadcast over every byte of the source.
  - The output always has the same length as the source.

# Important note:

XOR is its own inverse, so Decode is the same operation as Encode.
The same key must be provided to accurately reverse the process.
Failing to do so will result in garbled data.
*/
package xor
