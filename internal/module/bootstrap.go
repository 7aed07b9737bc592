package module

import "github.com/cwbudde/cscheme/internal/eval"

// bootstrapSources holds modules written in the language itself. Each
// entry is one module's full source, parsed and analyzed the first
// time `(include "name")` resolves to it.
var bootstrapSources = map[string]string{
	"seq": seqSource,
}

// seqSource implements the sequence-processing procedures of §6.3
// entirely in terms of already-installed primitives (cons, car, cdr,
// null?, the arithmetic and comparison operators): this module needs no
// host support at all, unlike "symbol".
const seqSource = `
(define (length lst)
  (if (null? lst) 0 (+ 1 (length (cdr lst)))))

(define (list-ref lst n)
  (if (= n 0) (car lst) (list-ref (cdr lst) (- n 1))))

(define (append a b)
  (if (null? a) b (cons (car a) (append (cdr a) b))))

(define (reverse lst)
  (define (iter lst acc)
    (if (null? lst) acc (iter (cdr lst) (cons (car lst) acc))))
  (iter lst '()))

(define (list-copy lst)
  (if (null? lst) '() (cons (car lst) (list-copy (cdr lst)))))

(define (map f lst)
  (if (null? lst) '() (cons (f (car lst)) (map f (cdr lst)))))

(define (for-each f lst)
  (if (null? lst) #t (begin (f (car lst)) (for-each f (cdr lst)))))

(define (filter pred lst)
  (cond ((null? lst) '())
        ((pred (car lst)) (cons (car lst) (filter pred (cdr lst))))
        (else (filter pred (cdr lst)))))

(define (accumulate op initial lst)
  (if (null? lst) initial (op (car lst) (accumulate op initial (cdr lst)))))

(define (fold-left op initial lst)
  (if (null? lst) initial (fold-left op (op initial (car lst)) (cdr lst))))

(define (range a b)
  (if (>= a b) '() (cons a (range (+ a 1) b))))

(define (insert-sorted x lst less?)
  (cond ((null? lst) (list x))
        ((less? x (car lst)) (cons x lst))
        (else (cons (car lst) (insert-sorted x (cdr lst) less?)))))

(define (sort lst less?)
  (if (null? lst) '() (insert-sorted (car lst) (sort (cdr lst) less?) less?)))
`

// installSymbolModule binds `symbol` and `symbol-append`, which need
// host support because nothing in the surface language can turn
// arbitrary text into a symbol value otherwise.
func installSymbolModule(ip *eval.Interpreter) {
	ip.Global.Define("symbol", eval.NewPrimitive(ip.Tracker, "symbol", func(ip *eval.Interpreter, args []eval.Value) (eval.Value, error) {
		if len(args) != 1 {
			return nil, eval.ArityError(ip, "symbol", 1, 1, len(args))
		}
		return eval.NewSymbol(ip.Tracker, eval.TextOf(args[0])).Retain(), nil
	}).Retain())

	ip.Global.Define("symbol-append", eval.NewPrimitive(ip.Tracker, "symbol-append", func(ip *eval.Interpreter, args []eval.Value) (eval.Value, error) {
		text := ""
		for _, a := range args {
			text += eval.TextOf(a)
		}
		return eval.NewSymbol(ip.Tracker, text).Retain(), nil
	}).Retain())
}
