// Package tesseract provides OCR for scanned tender pages through the
// Tesseract engine. It backs the image extractor.
//
// Build requires:
//   - Tesseract and Leptonica development libraries with Russian language data
//   - Install via: brew install tesseract tesseract-lang (macOS) or
//     apt install libtesseract-dev libleptonica-dev tesseract-ocr-rus (Linux)
//
// Builds without CGO get a stub that reports domain.ErrOCRUnavailable.
package tesseract
