package resolver

import (
	"fmt"
	"strings"
)

const baseInstructions = `Kamu adalah "Kindora", asisten kesehatan mental berbahasa Indonesia yang teliti, hangat, dan komunikatif.

Pedoman umum:
- Jawab dalam bahasa yang sama dengan pengguna.
- Gunakan bahasa sehari-hari yang sederhana, bukan jargon teknis.
- Kamu BUKAN terapis, dokter, atau layanan darurat, dan tidak memberikan diagnosis medis.
- Jika pengguna menyebut menyakiti diri sendiri atau orang lain, dorong mereka mencari bantuan darurat atau orang yang dipercaya.`

const toolProtocol = `Kemampuan tambahan (Tools):
%s
Jika pertanyaan jelas membutuhkan salah satu kemampuan di atas, balas HANYA dengan satu baris berformat:
TOOL: nama_tool | argumen
Jika tidak, jawab langsung seperti biasa. Maksimal satu tool per giliran.`

const documentInstructions = `PERHATIAN: Pengguna telah mengunggah sebuah dokumen kesehatan mental.

TUGAS UTAMA:
1. Jawab pertanyaan pengguna HANYA berdasarkan 'KONTEKS DOKUMEN' di bawah ini.
2. Jika jawaban tidak ada di dokumen, katakan jujur bahwa informasi tersebut tidak ditemukan di dalam dokumen.
3. Gunakan Tools hanya jika pertanyaan jelas-jelas tidak berkaitan dengan isi dokumen.`

// Prompt assembly: a fixed instruction block, at most one evidence block,
// then the raw question. Evidence sources are never mixed in one prompt.

func buildDocumentPrompt(toolList, docText, query string) string {
	var b strings.Builder
	b.WriteString(baseInstructions)
	b.WriteString("\n\n")
	b.WriteString(documentInstructions)
	if toolList != "" {
		b.WriteString("\n\n")
		fmt.Fprintf(&b, toolProtocol, toolList)
	}
	b.WriteString("\n\n--- KONTEKS DOKUMEN ---\n")
	b.WriteString(docText)
	b.WriteString("\n--- AKHIR KONTEKS DOKUMEN ---\n")
	b.WriteString("\nPertanyaan: ")
	b.WriteString(query)
	return b.String()
}

func buildVectorPrompt(toolList, passages, query string) string {
	var b strings.Builder
	b.WriteString(baseInstructions)
	b.WriteString("\n\nBerdasarkan data berikut, jawab pertanyaan pengguna.")
	if toolList != "" {
		b.WriteString("\n\n")
		fmt.Fprintf(&b, toolProtocol, toolList)
	}
	b.WriteString("\n\n--- DATABASE ---\n")
	b.WriteString(passages)
	b.WriteString("\n--- AKHIR DATABASE ---\n")
	b.WriteString("\nPertanyaan: ")
	b.WriteString(query)
	return b.String()
}

// buildFollowUpPrompt feeds a tool's return value back for the final answer.
func buildFollowUpPrompt(query, toolName, toolResult string) string {
	var b strings.Builder
	b.WriteString(baseInstructions)
	b.WriteString("\n\nKamu baru saja menggunakan kemampuan '")
	b.WriteString(toolName)
	b.WriteString("' dan mendapatkan hasil berikut:\n\n")
	b.WriteString(toolResult)
	b.WriteString("\n\nGunakan hasil tersebut untuk menjawab pertanyaan pengguna secara natural.")
	b.WriteString("\n\nPertanyaan: ")
	b.WriteString(query)
	return b.String()
}
