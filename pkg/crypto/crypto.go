// Package crypto はセーブデータの gameRecord エントリで使用される暗号化を扱います。
//
// 主な機能:
//   - DecryptRecord: 先頭のマーカーバイトを除いた AES-256-CBC 暗号文の復号
//   - EncryptRecord: DecryptRecord の逆変換（テストや再パック用）
//   - PKCS#7 パディングの付与と除去
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// recordKey と recordIV はセーブ形式の一部として固定されている値です。
// 環境変数や設定ファイルから変更してはいけません。
var (
	recordKey = [32]byte{
		0xE8, 0x96, 0x9A, 0xD2, 0xA5, 0x40, 0x25, 0x9B,
		0x97, 0x91, 0x90, 0x8B, 0x88, 0xE6, 0xBF, 0x03,
		0x1E, 0x6D, 0x21, 0x95, 0x6E, 0xFA, 0xD6, 0x8A,
		0x50, 0xDD, 0x55, 0xD6, 0x7A, 0xB0, 0x92, 0x4B,
	}
	recordIV = [aes.BlockSize]byte{
		0x2A, 0x4F, 0xF0, 0x8A, 0xC8, 0x0D, 0x63, 0x07,
		0x00, 0x57, 0xC5, 0x95, 0x18, 0xC8, 0x32, 0x53,
	}
)

// DecryptRecord は gameRecord エントリの生データを復号します
// 先頭1バイトはフォーマットのマーカーで、暗号文には含まれません
func DecryptRecord(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: マーカーバイトがありません", ErrDecryption)
	}
	return decryptCBC(raw[1:], recordKey[:], recordIV[:])
}

// EncryptRecord は平文を暗号化し、先頭にマーカーバイトを付与します
func EncryptRecord(plain []byte, marker byte) []byte {
	block, err := aes.NewCipher(recordKey[:])
	if err != nil {
		// 鍵長は固定なのでここには到達しない
		panic(err)
	}

	padded := pkcs7Pad(plain, aes.BlockSize)
	out := make([]byte, 1+len(padded))
	out[0] = marker
	cipher.NewCBCEncrypter(block, recordIV[:]).CryptBlocks(out[1:], padded)
	return out
}

// decryptCBC は AES-CBC で復号し、パディングを取り除きます
func decryptCBC(ciphertext, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: 暗号文の長さ %d がブロックサイズの倍数ではありません", ErrDecryption, len(ciphertext))
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	return pkcs7Unpad(plain, aes.BlockSize)
}

// pkcs7Pad は PKCS#7 パディングを付与します
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad は PKCS#7 パディングを検証して取り除きます
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: 不正なデータ長 %d", ErrDecryption, len(data))
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: 不正なパディング値 %d", ErrDecryption, n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: パディングが壊れています", ErrDecryption)
		}
	}

	return data[:len(data)-n], nil
}
