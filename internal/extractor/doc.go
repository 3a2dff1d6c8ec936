// Package extractor turns the wikitext of a task page into source files.
//
// A page is split into header segments, one per {{header|LANGUAGE}} line.
// Every <lang> block of a segment becomes one file at
//
//	{root}/{task}/{language}/{task-lowercased}[-N].{extension}
//
// where -N numbers the blocks of segments holding more than one block.
package extractor
