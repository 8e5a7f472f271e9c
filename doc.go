/*
Package shader builds linked GPU shader programs from a vertex and a
fragment source, with deterministic error reporting at every stage.

# Overview

A build runs four steps against one rendering context:

	Loader   reads both sources (ErrResourceNotFound, ErrEmptySource)
	Compiler compiles each source (*CompileError)
	Linker   links the two shaders and makes the program current (*LinkError)
	Reporter prints driver errors and build failures to a diagnostic stream

The rendering context is never implicit. Every call that touches the
driver takes a Driver, and a Driver value stands for exactly one context.
Two pipelines can build against two contexts side by side, and tests can
substitute an in-memory driver.

# Quick Start

	// Setup (after the context has been made current)
	drv := opengl.NewDriver()
	p := shader.New(shader.WithBaseDir("shaders"))

	// Tolerates the GL_INVALID_ENUM left behind by extension loaders.
	if err := p.CheckInit(drv); err != nil {
	    return err
	}

	prog, err := p.Build(drv, "vshader.glsl", "fshader.glsl")
	if err != nil {
	    var ce *shader.CompileError
	    if errors.As(err, &ce) {
	        // ce.Source is the exact text submitted, ce.Log the driver log
	    }
	    return err
	}
	defer prog.Delete(drv)

# Diagnostics

Driver errors are printed one per line:

	[ERROR] (compile vertex vshader.glsl) invalid operation

Compile failures also print the offending source and the driver log
(truncated to DefaultLogLimit bytes unless WithLogLimit says otherwise).
Draining the error queue never changes control flow; only CheckInit can
turn a queued code into an error, and only for codes that are not on the
tolerated list (WithTolerated).

# Threading

Nothing here locks. Driver calls for one context must come from one
goroutine at a time, which for OpenGL usually means the locked main
thread.
*/
package shader
